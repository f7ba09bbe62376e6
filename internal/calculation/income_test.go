package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateIncome_AllSources(t *testing.T) {
	cfg := defaultConfig(t)
	p := salaryProfile(900000)
	p.EmploymentPeriods[0].Bonus = rupees(100000)
	p.OtherIncome = domain.OtherIncome{
		SavingsInterest:       rupees(8000),
		DepositInterest:       rupees(12000),
		Dividends:             rupees(5000),
		GiftsFromNonRelatives: rupees(60000),
		AgriculturalIncome:    rupees(200000),
		Other:                 rupees(15000),
	}
	p.HouseProperty = domain.HouseProperty{RentReceived: rupees(240000), MunicipalTaxes: rupees(40000)}
	log := testLog()

	ib := AggregateIncome(p, cfg, cfg.Regimes[domain.RegimeOld], dec("0"), log)

	assertDecimal(t, "1000000", ib.Salary)
	assertDecimal(t, "140000", ib.HouseProperty)
	assertDecimal(t, "20000", ib.Interest)
	assertDecimal(t, "60000", ib.Gifts)
	assertDecimal(t, "200000", ib.AgriculturalExcluded)
	assertDecimal(t, "1240000", ib.Total)

	agri, ok := findEntry(log.Entries(), domain.SectionAgricultural, "Agricultural income")
	require.True(t, ok)
	require.NotNil(t, agri.TaxSaved)
	assertDecimal(t, "60000", *agri.TaxSaved)
}

func TestGiftIncome_AllOrNothing(t *testing.T) {
	assertDecimal(t, "0", GiftIncome(dec("50000"), dec("50000"), testLog()))
	assertDecimal(t, "50001", GiftIncome(dec("50001"), dec("50000"), testLog()))
}

func TestHousePropertyIncome_NewRegimeFloorsAtZero(t *testing.T) {
	cfg := defaultConfig(t)
	hp := domain.HouseProperty{
		RentReceived:             rupees(120000),
		LetOutLoanInterest:       rupees(300000),
		SelfOccupiedLoanInterest: rupees(150000),
	}

	assertDecimal(t, "0", HousePropertyIncome(hp, cfg, cfg.Regimes[domain.RegimeNew], testLog()))
	// 120000 - 36000 - 300000 - 150000, limited to -200000
	assertDecimal(t, "-200000", HousePropertyIncome(hp, cfg, cfg.Regimes[domain.RegimeOld], testLog()))
}

func TestHousePropertyIncome_SelfOccupiedInterestCapped(t *testing.T) {
	cfg := defaultConfig(t)
	hp := domain.HouseProperty{SelfOccupiedLoanInterest: rupees(350000)}

	assertDecimal(t, "-200000", HousePropertyIncome(hp, cfg, cfg.Regimes[domain.RegimeOld], testLog()))
}

func TestAggregateIncome_ShortTermPropertyGain(t *testing.T) {
	cfg := defaultConfig(t)
	ib := AggregateIncome(salaryProfile(500000), cfg, cfg.Regimes[domain.RegimeNew], dec("250000"), testLog())

	assertDecimal(t, "250000", ib.ShortTermPropertyGain)
	assertDecimal(t, "750000", ib.Total)
}

func TestAggregateIncome_NegativeInputsCoerced(t *testing.T) {
	cfg := defaultConfig(t)
	p := salaryProfile(-1)
	p.OtherIncome.Dividends = rupees(-500)

	ib := AggregateIncome(p, cfg, cfg.Regimes[domain.RegimeOld], dec("0"), testLog())

	assert.True(t, ib.Total.IsZero())
}
