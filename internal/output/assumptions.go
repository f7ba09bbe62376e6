package output

// DefaultAssumptions lists the modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Fiscal year runs from April through March",
	"Employment and rent periods without dates cover the whole fiscal year",
	"Amounts are not rounded; the statutory rounding to the nearest ten rupees is not applied",
	"Capital gains taxed at special rates are added after health and education cess",
	"Tax-saved figures are estimates at a flat marginal rate, not exact savings",
}
