package config

import (
	"fmt"
	"os"

	"github.com/rentvest/property-vs-fund/internal/calculation"
	"github.com/rentvest/property-vs-fund/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Rules != nil {
		if err := ip.validateRules(config.Rules); err != nil {
			return fmt.Errorf("rules validation failed: %w", err)
		}
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]int, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if prev, dup := seen[scenario.Name]; dup {
			return fmt.Errorf("scenario %d: name %q already used by scenario %d", i, scenario.Name, prev)
		}
		seen[scenario.Name] = i
	}

	return nil
}

// validateRules checks overridden rules, including both bracket tables
func (ip *InputParser) validateRules(rules *domain.JurisdictionRules) error {
	effective := rules.WithDefaults()
	if err := effective.Validate(); err != nil {
		return err
	}
	if _, err := calculation.NewBracketTable(effective.LandTaxBrackets); err != nil {
		return fmt.Errorf("land_tax_brackets: %w", err)
	}
	if _, err := calculation.NewBracketTable(effective.StampDutyBrackets); err != nil {
		return fmt.Errorf("stamp_duty_brackets: %w", err)
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	return scenario.Inputs.Validate()
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	reference := domain.DefaultScenarioInputs()

	firstHome := reference
	firstHome.PurchasePrice = decimal.NewFromInt(650000)
	firstHome.DownPayment = decimal.NewFromInt(130000)
	firstHome.IsFirstTimeBuyer = true
	firstHome.WeeklyRentIncome = decimal.NewFromInt(450)

	highRates := reference
	highRates.MortgageInterestRate = decimal.RequireFromString("7.5")
	highRates.PropertyAppreciationRate = decimal.RequireFromString("3.5")

	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Reference 800k", Inputs: reference},
			{Name: "First Home 650k", Inputs: firstHome},
			{Name: "High Rates", Inputs: highRates},
		},
	}
}
