package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/payroll"
)

const (
	configFileBase         = "gigstaff_config"
	defaultHTTPAddr        = ":8080"
	defaultRecurrenceLimit = 52
	defaultRosterTab       = "Workers"
)

// HolidayRule marks event dates matching an RRULE as holidays (holiday pay multiplier applies)
type HolidayRule struct {
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// TravelTierConfig is one mileage bracket in the seed settings
type TravelTierConfig struct {
	MinMiles  float64 `yaml:"minMiles" validate:"min=0"`
	MaxMiles  float64 `yaml:"maxMiles" validate:"min=0"`
	PayAmount float64 `yaml:"payAmount" validate:"min=0"`
}

// SeedSettings are the pay settings written to an empty database by the migrate command
type SeedSettings struct {
	PayRates    map[string]float64 `yaml:"payRates" validate:"dive,keys,required,endkeys,min=0"`
	TravelTiers []TravelTierConfig `yaml:"travelTiers" validate:"dive"`
	Bonuses     map[string]float64 `yaml:"bonuses,omitempty" validate:"dive,keys,required,endkeys,min=0"`
}

// PaySettings converts the seed into calculator settings
func (s SeedSettings) PaySettings() payroll.PaySettings {
	settings := payroll.PaySettings{
		Rates:   make(payroll.PayRateTable, len(s.PayRates)),
		Bonuses: make(payroll.BonusTable, len(s.Bonuses)),
	}
	for position, rate := range s.PayRates {
		settings.Rates[position] = decimal.NewFromFloat(rate)
	}
	for _, t := range s.TravelTiers {
		settings.Tiers = append(settings.Tiers, payroll.TravelTier{
			MinMiles:  decimal.NewFromFloat(t.MinMiles),
			MaxMiles:  decimal.NewFromFloat(t.MaxMiles),
			PayAmount: decimal.NewFromFloat(t.PayAmount),
		})
	}
	for name, amount := range s.Bonuses {
		settings.Bonuses[name] = decimal.NewFromFloat(amount)
	}
	return settings
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string        `yaml:"databaseURL" validate:"required"`
	HTTPAddr        string        `yaml:"httpAddr,omitempty"`
	AllowedOrigins  []string      `yaml:"allowedOrigins,omitempty" validate:"dive,url"`
	MapsAPIKey      string        `yaml:"mapsAPIKey,omitempty"`
	GmailSender     string        `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	NotifyOnAssign  bool          `yaml:"notifyOnAssign"`
	RosterSheetID   string        `yaml:"rosterSheetID,omitempty"`
	RosterTab       string        `yaml:"rosterTab,omitempty"`
	PayrollSheetID  string        `yaml:"payrollSheetID,omitempty"`
	RecurrenceLimit int           `yaml:"recurrenceLimit,omitempty" validate:"omitempty,min=1,max=366"`
	HolidayRules    []HolidayRule `yaml:"holidayRules,omitempty" validate:"dive"`
	SeedSettings    *SeedSettings `yaml:"seedSettings,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates gigstaff_config.<env>.yaml.
// It looks in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	// Read and parse YAML
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill optional fields before validating
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, holiday rrule syntax and seed pay settings
func Validate(cfg *Config) error {
	// Struct tags first
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Check each RRULE parses
	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d] (%s): %w", i, rule.Name, err)
		}
	}

	// Seed settings must pass the same checks as saved settings
	if cfg.SeedSettings != nil {
		if err := cfg.SeedSettings.PaySettings().Validate(); err != nil {
			return fmt.Errorf("invalid seedSettings: %w", err)
		}
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	if cfg.RecurrenceLimit == 0 {
		cfg.RecurrenceLimit = defaultRecurrenceLimit
	}
	if cfg.RosterTab == "" {
		cfg.RosterTab = defaultRosterTab
	}
}

// findConfigFile searches for gigstaff_config.<env>.yaml in the current directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := configFileBase + ".yaml"
	if env != "" {
		configFileName = configFileBase + "." + env + ".yaml"
	}

	// Check current directory first
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Fall back to home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
