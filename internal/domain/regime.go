package domain

import (
	"fmt"
	"strings"
)

// Regime identifies one of the two mutually exclusive sets of tax rules
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// Regimes lists every supported regime in display order
var Regimes = []Regime{RegimeOld, RegimeNew}

// ParseRegime converts user input ("old", "New", "NEW") into a Regime
func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToLower(strings.TrimSpace(s))) {
	case RegimeOld:
		return RegimeOld, nil
	case RegimeNew:
		return RegimeNew, nil
	}
	return "", fmt.Errorf("unknown regime %q (expected old or new)", s)
}

// Title returns the display name of the regime
func (r Regime) Title() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	}
	return string(r)
}

// AgeCategory selects the slab table for an individual
type AgeCategory string

const (
	AgeBelow60     AgeCategory = "below_60"
	AgeSenior      AgeCategory = "senior_60_79"
	AgeSuperSenior AgeCategory = "super_senior_80_plus"
)

// Normalize maps empty or unrecognised values to the below-60 category
func (a AgeCategory) Normalize() AgeCategory {
	switch a {
	case AgeBelow60, AgeSenior, AgeSuperSenior:
		return a
	}
	return AgeBelow60
}

// IsSenior reports whether the category is 60 or older
func (a AgeCategory) IsSenior() bool {
	a = a.Normalize()
	return a == AgeSenior || a == AgeSuperSenior
}

// LogCategory groups log entries for "what saved you money" reporting
type LogCategory string

const (
	CategoryWealthBuilding LogCategory = "wealth_building"
	CategoryExpenseBased   LogCategory = "expense_based"
	CategoryDonation       LogCategory = "donation"
	CategoryNeutral        LogCategory = "neutral"
)

// Statutory section labels used in the calculation log and in the regime allow-lists.
const (
	SectionIncome          = "Income"
	SectionSalary          = "17(1)"
	SectionHouseProperty   = "24"
	SectionHomeLoan24B     = "24(b)"
	SectionOtherSources    = "56"
	SectionGifts           = "56(2)(x)"
	SectionAgricultural    = "10(1)"
	SectionHRA             = "10(13A)"
	SectionLTA             = "10(5)"
	SectionGratuity        = "10(10)"
	SectionLeaveEncashment = "10(10AA)"
	SectionVRS             = "10(10C)"
	SectionAllowances      = "10(14)"
	SectionStandardDed     = "16(ia)"
	SectionProfessionalTax = "16(iii)"
	Section80C             = "80C"
	Section80CCC           = "80CCC"
	Section80CCD1          = "80CCD(1)"
	Section80CCD1B         = "80CCD(1B)"
	Section80CCD2          = "80CCD(2)"
	Section80CCE           = "80CCE"
	Section80D             = "80D"
	Section80DD            = "80DD"
	Section80DDB           = "80DDB"
	Section80E             = "80E"
	Section80EE            = "80EE"
	Section80EEA           = "80EEA"
	Section80EEB           = "80EEB"
	Section80G             = "80G"
	Section80GG            = "80GG"
	Section80GGA           = "80GGA"
	Section80GGC           = "80GGC"
	Section80TTA           = "80TTA"
	Section80TTB           = "80TTB"
	Section80U             = "80U"
	SectionSlab            = "Slab"
	SectionRebate          = "87A"
	SectionMarginalRelief  = "87A-MR"
	SectionSurcharge       = "Surcharge"
	SectionCess            = "Cess"
	SectionSTCG            = "111A"
	SectionLTCG            = "112A"
	SectionPropertyLTCG    = "112"
	SectionLossSetOff      = "70-74"
	SectionReinvestment    = "54/54EC/54F"
	SectionSummary         = "Summary"
)
