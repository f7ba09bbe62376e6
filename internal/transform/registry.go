package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for CLI and API use.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("add_80c", createAddInvestment80C)
	registry.Register("add_nps", createAddNPSContribution)
	registry.Register("set_employer_nps", createSetEmployerNPS)
	registry.Register("add_health_insurance", createAddHealthInsurance)
	registry.Register("set_rent", createSetRent)
	registry.Register("add_donation", createAddDonation)
	registry.Register("add_home_loan_interest", createAddHomeLoanInterest)
	registry.Register("set_age", createSetAgeCategory)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value", e.g. "add_nps:amount=50000".
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	out := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func requiredAmount(name, key string, params map[string]string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", name, key)
	}
	return parseAmount(key, s)
}

func optionalAmount(key string, params map[string]string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, nil
	}
	return parseAmount(key, s)
}

func parseAmount(key, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func parseBool(s string) bool {
	return s == "true" || s == "yes" || s == "1"
}

func createAddInvestment80C(params map[string]string) (ProfileTransform, error) {
	amount, err := requiredAmount("add_80c", "amount", params)
	if err != nil {
		return nil, err
	}
	kind := params["type"]
	if kind == "" {
		kind = domain.InvestmentPPF
	}
	return &AddInvestment80C{Type: kind, Amount: amount}, nil
}

func createAddNPSContribution(params map[string]string) (ProfileTransform, error) {
	amount, err := requiredAmount("add_nps", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AddNPSContribution{Amount: amount}, nil
}

func createSetEmployerNPS(params map[string]string) (ProfileTransform, error) {
	amount, err := requiredAmount("set_employer_nps", "amount", params)
	if err != nil {
		return nil, err
	}
	period := 1
	if s, ok := params["period"]; ok {
		period, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid period value: %w", err)
		}
	}
	return &SetEmployerNPS{Period: period, Amount: amount}, nil
}

func createAddHealthInsurance(params map[string]string) (ProfileTransform, error) {
	self, err := optionalAmount("self", params)
	if err != nil {
		return nil, err
	}
	parents, err := optionalAmount("parents", params)
	if err != nil {
		return nil, err
	}
	if self.IsZero() && parents.IsZero() {
		return nil, fmt.Errorf("add_health_insurance requires 'self' or 'parents' parameter")
	}
	return &AddHealthInsurance{Self: self, Parents: parents, ParentsSenior: parseBool(params["parents_senior"])}, nil
}

func createSetRent(params map[string]string) (ProfileTransform, error) {
	var annual decimal.Decimal
	if s, ok := params["monthly"]; ok {
		monthly, err := parseAmount("monthly", s)
		if err != nil {
			return nil, err
		}
		annual = monthly.Mul(decimal.NewFromInt(12))
	} else {
		var err error
		if annual, err = requiredAmount("set_rent", "annual", params); err != nil {
			return nil, fmt.Errorf("set_rent requires 'annual' or 'monthly' parameter")
		}
	}
	return &SetRent{Annual: annual, Metro: parseBool(params["metro"])}, nil
}

func createAddDonation(params map[string]string) (ProfileTransform, error) {
	category, ok := params["category"]
	if !ok {
		return nil, fmt.Errorf("add_donation requires 'category' parameter")
	}
	amount, err := requiredAmount("add_donation", "amount", params)
	if err != nil {
		return nil, err
	}
	mode := params["mode"]
	if mode == "" {
		mode = "bank"
	}
	return &AddDonation{Category: category, Amount: amount, PaymentMode: mode}, nil
}

func createAddHomeLoanInterest(params map[string]string) (ProfileTransform, error) {
	amount, err := requiredAmount("add_home_loan_interest", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AddHomeLoanInterest{Amount: amount}, nil
}

func createSetAgeCategory(params map[string]string) (ProfileTransform, error) {
	category, ok := params["category"]
	if !ok {
		return nil, fmt.Errorf("set_age requires 'category' parameter")
	}
	return &SetAgeCategory{Category: domain.AgeCategory(category)}, nil
}
