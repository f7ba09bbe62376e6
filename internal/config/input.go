package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultTables embed.FS

// DefaultFiscalYear is the tax table used when no --tax-config is given
const DefaultFiscalYear = "2025-26"

var (
	// ErrUnknownFiscalYear is returned when no embedded table exists for a year
	ErrUnknownFiscalYear = errors.New("no built-in tax table for fiscal year")
	// ErrUnknownRegime is returned when a configuration lacks a requested regime
	ErrUnknownRegime = errors.New("regime not present in tax configuration")
)

// InputParser loads tax tables and user profiles from YAML or JSON
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadTaxConfiguration reads and validates a tax table from disk
func (ip *InputParser) LoadTaxConfiguration(filename string) (*domain.TaxConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax configuration %s: %w", filename, err)
	}
	return ip.ParseTaxConfiguration(data, formatFor(filename))
}

// DefaultTaxConfiguration returns the embedded table for a fiscal year ("2025-26")
func (ip *InputParser) DefaultTaxConfiguration(fiscalYear string) (*domain.TaxConfiguration, error) {
	if fiscalYear == "" {
		fiscalYear = DefaultFiscalYear
	}
	data, err := defaultTables.ReadFile("defaults/fy" + fiscalYear + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w %s", ErrUnknownFiscalYear, fiscalYear)
	}
	return ip.ParseTaxConfiguration(data, "yaml")
}

// AvailableFiscalYears lists the embedded tax tables
func AvailableFiscalYears() []string {
	entries, err := defaultTables.ReadDir("defaults")
	if err != nil {
		return nil
	}
	var years []string
	for _, e := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(e.Name(), "fy"), ".yaml")
		years = append(years, name)
	}
	return years
}

// ParseTaxConfiguration decodes and validates a tax table. The table is rejected
// before any calculation runs if a required field is missing or inconsistent.
func (ip *InputParser) ParseTaxConfiguration(data []byte, format string) (*domain.TaxConfiguration, error) {
	var cfg domain.TaxConfiguration
	if err := decode(data, format, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tax configuration: %w", err)
	}
	if err := ValidateTaxConfiguration(&cfg); err != nil {
		return nil, fmt.Errorf("tax configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadProfile reads a user profile from a YAML or JSON file
func (ip *InputParser) LoadProfile(filename string) (*domain.UserTaxProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", filename, err)
	}
	return ip.ParseProfile(data, formatFor(filename))
}

// ParseProfile decodes a profile. Amount fields are lenient, so only structural
// errors fail. List items without an ID are assigned one here; the engine never
// generates identifiers itself.
func (ip *InputParser) ParseProfile(data []byte, format string) (*domain.UserTaxProfile, error) {
	var profile domain.UserTaxProfile
	if err := decode(data, format, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	AssignIDs(&profile)
	return &profile, nil
}

// AssignIDs gives every list item without an ID a random one
func AssignIDs(p *domain.UserTaxProfile) {
	for i := range p.EmploymentPeriods {
		if p.EmploymentPeriods[i].ID == "" {
			p.EmploymentPeriods[i].ID = uuid.NewString()
		}
	}
	for i := range p.RentPeriods {
		if p.RentPeriods[i].ID == "" {
			p.RentPeriods[i].ID = uuid.NewString()
		}
	}
	for i := range p.Investments80C {
		if p.Investments80C[i].ID == "" {
			p.Investments80C[i].ID = uuid.NewString()
		}
	}
	for i := range p.Donations {
		if p.Donations[i].ID == "" {
			p.Donations[i].ID = uuid.NewString()
		}
	}
}

func formatFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

func decode(data []byte, format string, out any) error {
	if format == "json" {
		return json.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}
