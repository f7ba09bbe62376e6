package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func rupees(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// CreateBuiltInTemplates creates a registry with the common Old Regime tax-planning moves
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	max80C := &AddInvestment80C{Type: domain.InvestmentPPF, Amount: rupees(150000)}
	maxNPS := &AddNPSContribution{Amount: rupees(50000)}
	health := &AddHealthInsurance{Self: rupees(25000), Parents: rupees(50000), ParentsSenior: true}
	homeLoan := &AddHomeLoanInterest{Amount: rupees(200000)}

	registry.Register(Template{
		Name:        "max_80c",
		Category:    "Investments",
		Description: "Invest ₹1,50,000 in PPF (the full 80C limit)",
		Transforms:  []ProfileTransform{max80C},
	})
	registry.Register(Template{
		Name:        "max_nps",
		Category:    "Investments",
		Description: "Contribute ₹50,000 to NPS under 80CCD(1B)",
		Transforms:  []ProfileTransform{maxNPS},
	})
	registry.Register(Template{
		Name:        "health_cover",
		Category:    "Expenses",
		Description: "Insure self and family (₹25,000) and senior parents (₹50,000)",
		Transforms:  []ProfileTransform{health},
	})
	registry.Register(Template{
		Name:        "home_loan",
		Category:    "Expenses",
		Description: "Pay ₹2,00,000 interest on a self-occupied home loan",
		Transforms:  []ProfileTransform{homeLoan},
	})
	registry.Register(Template{
		Name:        "max_investments",
		Category:    "Combination Strategies",
		Description: "Full 80C limit plus the NPS top-up",
		Transforms:  []ProfileTransform{max80C, maxNPS},
	})
	registry.Register(Template{
		Name:        "full_planning",
		Category:    "Combination Strategies",
		Description: "80C, NPS, health insurance and home loan interest together",
		Transforms:  []ProfileTransform{max80C, maxNPS, health, homeLoan},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.UserTaxProfile, template Template) (*domain.UserTaxProfile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		categories[t.Category] = append(categories[t.Category], t)
	}

	for _, category := range []string{"Investments", "Expenses", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  taxgo whatif profile.yaml --template max_80c,max_nps\n")
	sb.WriteString("  taxgo whatif profile.yaml --transform add_nps:amount=50000\n")

	return sb.String()
}
