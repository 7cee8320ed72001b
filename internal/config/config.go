// Package config defines the data structures related to configuration and
// includes functions for loading and parsing calculation files.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/iwvelando/amortize/pkg/format"
	"github.com/iwvelando/amortize/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected for dates in config files.
const DateLayout = constants.DateLayout

// envPrefix scopes environment overrides, e.g. AMORTIZE_LOCALE.
const envPrefix = "AMORTIZE"

// settingDefaults registers the file-wide settings with viper. A key viper
// does not know about is never looked up in the environment, so every
// overridable setting needs an entry even when its default is empty.
var settingDefaults = map[string]any{
	"logging.level":      "",
	"logging.format":     "",
	"logging.outputFile": "",
	"output.format":      constants.OutputFormatPretty,
	"locale":             constants.DefaultLocale,
	"currencySymbol":     constants.DefaultCurrencySymbol,
}

// Configuration holds a calculation file: the loans to compute and how to
// report them.
type Configuration struct {
	Logging        LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output         OutputConfig  `yaml:"output,omitempty" json:"output,omitempty"`
	Locale         string        `yaml:"locale,omitempty" json:"locale,omitempty"`
	CurrencySymbol string        `yaml:"currencySymbol,omitempty" json:"currencySymbol,omitempty"` // display only
	Loans          []Loan        `yaml:"loans" json:"loans"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// such as an uploaded calculation file.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range settingDefaults {
		v.SetDefault(key, value)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills in settings left empty and names unnamed loans. Files
// read through viper already carry the setting defaults; this covers
// configurations decoded directly, such as API request bodies, and settings
// given explicitly as empty strings.
func (c *Configuration) ApplyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Locale == "" {
		c.Locale = constants.DefaultLocale
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = constants.DefaultCurrencySymbol
	}
	c.nameLoans()
}

// nameLoans gives each unnamed loan "Loan N", N being its position unless
// another loan already uses that name.
func (c *Configuration) nameLoans() {
	used := make(map[string]bool, len(c.Loans))
	for _, loan := range c.Loans {
		used[loan.Name] = true
	}

	for i := range c.Loans {
		if strings.TrimSpace(c.Loans[i].Name) != "" {
			continue
		}
		n := i + 1
		for used[fmt.Sprintf("Loan %d", n)] {
			n++
		}
		c.Loans[i].Name = fmt.Sprintf("Loan %d", n)
		used[c.Loans[i].Name] = true
	}
}

// ValidateConfiguration checks the settings that apply to the whole file.
// Loan level checks happen when each loan is converted and calculated.
func (c *Configuration) ValidateConfiguration() error {
	if len(c.Loans) == 0 {
		return fmt.Errorf("no loans configured")
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if _, err := format.ParseLocale(c.Locale); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Loans))
	for _, loan := range c.Loans {
		if seen[loan.Name] {
			return fmt.Errorf("duplicate loan name %q", loan.Name)
		}
		seen[loan.Name] = true
	}
	return nil
}
