package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCapitalGains_SetOffOrder(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{
		STCGEquity:       rupees(100000),
		LTCGEquity:       rupees(300000),
		STCLCarryForward: rupees(150000),
		LTCLCarryForward: rupees(50000),
	}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	assertDecimal(t, "100000", r.STLossAgainstST)
	assertDecimal(t, "50000", r.STLossAgainstLT)
	assertDecimal(t, "50000", r.LTLossAgainstLT)
	assertDecimal(t, "0", r.TaxableSTCG)
	assertDecimal(t, "200000", r.LTCGAfterSetOff)
	assertDecimal(t, "125000", r.LTCGExemptionUsed)
	assertDecimal(t, "75000", r.TaxableLTCG)
	assertDecimal(t, "9375", r.LTCGTax)
	assertDecimal(t, "9375", r.Tax)
	assertDecimal(t, "0", r.UnabsorbedSTLoss)
	assertDecimal(t, "0", r.UnabsorbedLTLoss)
}

func TestCalculateCapitalGains_LongTermLossNeverTouchesShortTermGain(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{STCGEquity: rupees(100000), LTCLCarryForward: rupees(200000)}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	assertDecimal(t, "100000", r.TaxableSTCG)
	assertDecimal(t, "20000", r.STCGTax)
	assertDecimal(t, "0", r.LTLossAgainstLT)
	assertDecimal(t, "200000", r.UnabsorbedLTLoss)
}

func TestCalculateCapitalGains_CurrentYearLosses(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{STCGEquity: rupees(-40000), LTCGEquity: rupees(500000)}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	assertDecimal(t, "40000", r.STLossAvailable)
	assertDecimal(t, "40000", r.STLossAgainstLT)
	assertDecimal(t, "335000", r.TaxableLTCG)
}

func TestCalculateCapitalGains_SetOffNeverExceedsLossOrGain(t *testing.T) {
	cfg := defaultConfig(t)
	cases := []domain.CapitalGainsInput{
		{STCGEquity: rupees(10), STCLCarryForward: rupees(1000000)},
		{LTCGEquity: rupees(10), LTCLCarryForward: rupees(1000000), STCLCarryForward: rupees(5)},
		{STCGEquity: rupees(500000), LTCGEquity: rupees(500000)},
		{STCGEquity: rupees(-500000), LTCGEquity: rupees(-500000)},
	}
	for i, in := range cases {
		r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())
		assert.True(t, r.STLossAgainstST.Add(r.STLossAgainstLT).LessThanOrEqual(r.STLossAvailable), "case %d", i)
		assert.True(t, r.LTLossAgainstLT.LessThanOrEqual(r.LTLossAvailable), "case %d", i)
		assert.True(t, r.STLossAgainstST.LessThanOrEqual(r.STGain), "case %d", i)
		assert.True(t, r.STLossAgainstLT.Add(r.LTLossAgainstLT).LessThanOrEqual(r.LTGain), "case %d", i)
		assert.False(t, r.Tax.IsNegative(), "case %d", i)
	}
}

func TestPropertyGain_GrandfatheredIndexedWins(t *testing.T) {
	cfg := defaultConfig(t)
	sale := domain.PropertySale{
		SalePrice:       rupees(6000000),
		PurchasePrice:   rupees(2000000),
		AcquisitionDate: domain.NewDate(2010, time.June, 15),
		SaleDate:        domain.NewDate(2025, time.June, 15),
	}

	pr, warnings := PropertyGain(sale, cfg.CapitalGains, testLog())

	assert.Empty(t, warnings)
	assert.True(t, pr.LongTerm)
	assert.True(t, pr.Grandfathered)
	assert.Equal(t, 167, pr.AcquisitionIndex)
	assert.Equal(t, 376, pr.SaleIndex)
	assertDecimal(t, "500000", pr.FlatTax)
	assert.Equal(t, domain.MethodIndexed, pr.Method)
	assert.True(t, pr.Tax.Equal(pr.IndexedTax))
	assert.True(t, pr.Tax.LessThan(pr.FlatTax))
}

func TestPropertyGain_GrandfatheredFlatWins(t *testing.T) {
	cfg := defaultConfig(t)
	sale := domain.PropertySale{
		SalePrice:       rupees(5000000),
		PurchasePrice:   rupees(1000000),
		AcquisitionDate: domain.NewDate(2023, time.April, 10),
		SaleDate:        domain.NewDate(2025, time.May, 10),
	}

	pr, _ := PropertyGain(sale, cfg.CapitalGains, testLog())

	assert.True(t, pr.Grandfathered)
	assert.Equal(t, domain.MethodFlat, pr.Method)
	assertDecimal(t, "500000", pr.Tax)
	assert.True(t, pr.IndexedTax.GreaterThan(pr.FlatTax))
}

func TestPropertyGain_AfterCutoffFlatOnly(t *testing.T) {
	cfg := defaultConfig(t)
	sale := domain.PropertySale{
		SalePrice:        rupees(9000000),
		PurchasePrice:    rupees(6000000),
		TransferExpenses: rupees(100000),
		Exemption54EC:    rupees(900000),
		AcquisitionDate:  domain.NewDate(2024, time.August, 1),
		SaleDate:         domain.NewDate(2026, time.September, 1),
	}

	pr, _ := PropertyGain(sale, cfg.CapitalGains, testLog())

	assert.Equal(t, 25, pr.HoldingMonths)
	assert.False(t, pr.Grandfathered)
	assert.Equal(t, domain.MethodFlat, pr.Method)
	assertDecimal(t, "2000000", pr.FlatGain)
	assertDecimal(t, "250000", pr.Tax)
	assert.True(t, pr.IndexedTax.IsZero())
}

func TestPropertyGain_ShortTermToSlab(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{Property: &domain.PropertySale{
		SalePrice:       rupees(4500000),
		PurchasePrice:   rupees(4000000),
		AcquisitionDate: domain.NewDate(2024, time.October, 1),
		SaleDate:        domain.NewDate(2025, time.September, 1),
	}}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	require.NotNil(t, r.Property)
	assert.False(t, r.Property.LongTerm)
	assertDecimal(t, "500000", r.SlabRatedGain)
	assertDecimal(t, "0", r.Tax)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "slab rates")
}

func TestPropertyGain_LongTermLossJoinsPool(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{
		LTCGEquity: rupees(400000),
		Property: &domain.PropertySale{
			SalePrice:       rupees(3000000),
			PurchasePrice:   rupees(3200000),
			AcquisitionDate: domain.NewDate(2024, time.August, 1),
			SaleDate:        domain.NewDate(2026, time.October, 1),
		},
	}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	assertDecimal(t, "200000", r.LTLossAvailable)
	assertDecimal(t, "200000", r.LTLossAgainstLT)
	assertDecimal(t, "75000", r.TaxableLTCG)
}

func TestPropertyGain_MissingDates(t *testing.T) {
	cfg := defaultConfig(t)
	sale := domain.PropertySale{SalePrice: rupees(2000000), PurchasePrice: rupees(1000000)}

	pr, warnings := PropertyGain(sale, cfg.CapitalGains, testLog())

	assert.True(t, pr.LongTerm)
	assert.False(t, pr.Grandfathered)
	assertDecimal(t, "125000", pr.Tax)
	assert.Len(t, warnings, 1)
}

func TestCalculateCapitalGains_LossesAbsorbedByLongTermPropertyGain(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{
		STCLCarryForward: rupees(200000),
		LTCLCarryForward: rupees(500000),
		Property: &domain.PropertySale{
			SalePrice:       rupees(4000000),
			PurchasePrice:   rupees(3000000),
			AcquisitionDate: domain.NewDate(2024, time.August, 1),
			SaleDate:        domain.NewDate(2026, time.October, 1),
		},
	}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	require.NotNil(t, r.Property)
	assertDecimal(t, "1000000", r.Property.FlatGain)
	assertDecimal(t, "700000", r.Property.LossSetOff)
	assertDecimal(t, "300000", r.Property.TaxableGain)
	assertDecimal(t, "37500", r.Property.Tax)
	assertDecimal(t, "200000", r.STLossAgainstLT)
	assertDecimal(t, "500000", r.LTLossAgainstLT)
	assertDecimal(t, "1000000", r.LTGain)
	assertDecimal(t, "0", r.UnabsorbedSTLoss)
	assertDecimal(t, "0", r.UnabsorbedLTLoss)
	assertDecimal(t, "37500", r.Tax)
}

func TestCalculateCapitalGains_EquityGainsAbsorbLossesBeforeProperty(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{
		LTCGEquity:       rupees(300000),
		LTCLCarryForward: rupees(500000),
		Property: &domain.PropertySale{
			SalePrice:       rupees(4000000),
			PurchasePrice:   rupees(3000000),
			AcquisitionDate: domain.NewDate(2024, time.August, 1),
			SaleDate:        domain.NewDate(2026, time.October, 1),
		},
	}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	assertDecimal(t, "0", r.LTCGAfterSetOff)
	assertDecimal(t, "200000", r.Property.LossSetOff)
	assertDecimal(t, "800000", r.Property.TaxableGain)
	assertDecimal(t, "500000", r.LTLossAgainstLT)
	assertDecimal(t, "0", r.UnabsorbedLTLoss)
}

func TestCalculateCapitalGains_LossesReduceGrandfatheredProperty(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{
		LTCLCarryForward: rupees(1000000),
		Property: &domain.PropertySale{
			SalePrice:       rupees(6000000),
			PurchasePrice:   rupees(2000000),
			AcquisitionDate: domain.NewDate(2010, time.June, 15),
			SaleDate:        domain.NewDate(2025, time.June, 15),
		},
	}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	pr := r.Property
	require.NotNil(t, pr)
	assert.Equal(t, domain.MethodIndexed, pr.Method)
	assertDecimal(t, "1000000", pr.LossSetOff)
	assert.True(t, pr.TaxableGain.Equal(pr.IndexedGain.Sub(dec("1000000"))))
	assert.True(t, pr.Tax.Equal(pr.TaxableGain.Mul(cfg.CapitalGains.PropertyIndexedRate)))
	assertDecimal(t, "375000", pr.FlatTax, "flat method on 3000000 after the same set-off")
	assertDecimal(t, "0", r.UnabsorbedLTLoss)
}

func TestCalculateCapitalGains_ShortTermLossReducesSlabRatedPropertyGain(t *testing.T) {
	cfg := defaultConfig(t)
	in := domain.CapitalGainsInput{
		STCLCarryForward: rupees(150000),
		LTCLCarryForward: rupees(100000),
		Property: &domain.PropertySale{
			SalePrice:       rupees(4500000),
			PurchasePrice:   rupees(4000000),
			AcquisitionDate: domain.NewDate(2024, time.October, 1),
			SaleDate:        domain.NewDate(2025, time.September, 1),
		},
	}

	r := CalculateCapitalGains(in, cfg.CapitalGains, testLog())

	assertDecimal(t, "350000", r.SlabRatedGain)
	assertDecimal(t, "150000", r.Property.LossSetOff)
	assertDecimal(t, "150000", r.STLossAgainstST)
	assertDecimal(t, "0", r.UnabsorbedSTLoss)
	assertDecimal(t, "100000", r.UnabsorbedLTLoss, "long-term loss never touches a short-term gain")
}

func TestCalculateCapitalGains_ExemptionSavingAtEquityRate(t *testing.T) {
	cfg := defaultConfig(t)
	log := testLog()

	CalculateCapitalGains(domain.CapitalGainsInput{LTCGEquity: rupees(300000)}, cfg.CapitalGains, log)

	e, ok := findEntry(log.Entries(), domain.SectionLTCG, "Long-term equity gains exemption")
	require.True(t, ok)
	require.NotNil(t, e.TaxSaved)
	assertDecimal(t, "15625", *e.TaxSaved, "125000 at 12.5%")
}
