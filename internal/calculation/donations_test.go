package calculation

import (
	"testing"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDonations_CashAboveLimitExcludedEntirely(t *testing.T) {
	cfg := defaultConfig(t)
	donations := []domain.Donation{
		{ID: "d1", Category: "charitable_trust", Amount: rupees(3000), PaymentMode: domain.PaymentCash},
	}
	log := testLog()

	res := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeOld], dec("1000000"), log)

	assertDecimal(t, "0", res.Total)
	require.Len(t, res.Outcomes, 1)
	assert.True(t, res.Outcomes[0].Excluded)
	assertDecimal(t, "0", res.Outcomes[0].Deduction)

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.IsZero())
	assert.Contains(t, entries[0].Explanation, "cash limit")
	assert.Equal(t, domain.CategoryDonation, entries[0].Category)
}

func TestCalculateDonations_CashWithinLimitAllowed(t *testing.T) {
	cfg := defaultConfig(t)
	donations := []domain.Donation{
		{Category: "pm_cares", Amount: rupees(2000), PaymentMode: domain.PaymentCash},
	}

	res := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeOld], dec("500000"), testLog())

	assertDecimal(t, "2000", res.Total)
}

func TestCalculateDonations_QualifyingLimitPool(t *testing.T) {
	cfg := defaultConfig(t)
	donations := []domain.Donation{
		{ID: "trust", Category: "charitable_trust", Amount: rupees(80000), PaymentMode: "bank"},
		{ID: "fp", Category: "family_planning", Amount: rupees(50000), PaymentMode: "upi"},
		{ID: "cares", Category: "pm_cares", Amount: rupees(10000), PaymentMode: "bank"},
	}

	res := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeOld], dec("1000000"), testLog())

	assertDecimal(t, "100000", res.QualifyingLimit)
	assertDecimal(t, "10000", res.Unlimited)
	// 100% category absorbs 50000 of the limit first, leaving 50000 at 50%
	assertDecimal(t, "75000", res.Limited)
	assertDecimal(t, "85000", res.Total)

	byID := map[string]DonationOutcome{}
	for _, o := range res.Outcomes {
		byID[o.ID] = o
	}
	assertDecimal(t, "50000", byID["trust"].Eligible)
	assertDecimal(t, "25000", byID["trust"].Deduction)
	assertDecimal(t, "50000", byID["fp"].Deduction)
}

func TestCalculateDonations_PoliticalPartyCashDisallowed(t *testing.T) {
	cfg := defaultConfig(t)
	donations := []domain.Donation{
		{Category: "political_party", Amount: rupees(1000), PaymentMode: domain.PaymentCash},
		{Category: "political_party", Amount: rupees(25000), PaymentMode: "bank"},
	}

	res := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeOld], dec("800000"), testLog())

	assertDecimal(t, "25000", res.Total)
	assert.True(t, res.Outcomes[0].Excluded)
	assert.Equal(t, domain.Section80GGC, res.Outcomes[1].Section)
}

func TestCalculateDonations_UnknownCategoryAndNewRegime(t *testing.T) {
	cfg := defaultConfig(t)
	donations := []domain.Donation{
		{Category: "temple_fund", Amount: rupees(5000), PaymentMode: "bank"},
		{Category: "pm_cares", Amount: rupees(5000), PaymentMode: "bank"},
	}

	old := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeOld], dec("800000"), testLog())
	assertDecimal(t, "5000", old.Total)
	assert.Contains(t, old.Outcomes[0].Reason, "Unknown donation category")

	newRes := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeNew], dec("800000"), testLog())
	assertDecimal(t, "0", newRes.Total)
}

func TestCalculateDonations_HalfRateNoLimit(t *testing.T) {
	cfg := defaultConfig(t)
	donations := []domain.Donation{{Category: "pm_drought_relief", Amount: rupees(40000), PaymentMode: "bank"}}

	res := CalculateDonations(donations, cfg.Donations, cfg.Regimes[domain.RegimeOld], dec("0"), testLog())

	assertDecimal(t, "20000", res.Total)
}

func TestKnownDonationCategory(t *testing.T) {
	cfg := defaultConfig(t)
	assert.True(t, KnownDonationCategory(cfg.Donations, "scientific_research"))
	assert.False(t, KnownDonationCategory(cfg.Donations, "nope"))
}
