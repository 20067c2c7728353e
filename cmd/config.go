package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/nivesh/folio"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration, read from a YAML file next to
// the store. Everything in it is optional: a missing file yields an empty
// config, and commands that need a value complain at the point of use.
type Config struct {
	// Sheets maps an asset class name to the published-CSV address of its
	// price sheet.
	Sheets map[string]string `yaml:"sheets"`
	// Quotes maps a ticker to a JSON quote source, for spot lookups that
	// have no sheet.
	Quotes map[string]QuoteSource `yaml:"quotes"`
	// Rates overrides the built-in currency conversion table, keyed by
	// ISO 4217 code with the EUR rate as value.
	Rates map[string]float64 `yaml:"rates"`
}

// QuoteSource locates one ticker's price inside a JSON document.
type QuoteSource struct {
	Class string `yaml:"class"`
	URL   string `yaml:"url"`
	Path  string `yaml:"path"`
}

// QuotesFor returns the configured spot quote sources of a class, keyed by
// ticker.
func (c *Config) QuotesFor(class folio.AssetClass) map[string]QuoteSource {
	sources := map[string]QuoteSource{}
	for ticker, src := range c.Quotes {
		if src.Class == string(class) {
			sources[folio.NormalizeTicker(ticker)] = src
		}
	}
	return sources
}

// LoadConfig reads the -config file, and the optional .env file for
// credentials such as the Gemini API key.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", *configFile, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", *configFile, err)
	}
	return cfg, nil
}

// SheetURL returns the configured price sheet address for a class.
func (c *Config) SheetURL(class folio.AssetClass) (string, bool) {
	addr, ok := c.Sheets[string(class)]
	return addr, ok && addr != ""
}

// RateTable returns the conversion table commands should use: the built-in
// one, shadowed by any configured overrides.
func (c *Config) RateTable() folio.RateTable {
	if len(c.Rates) == 0 {
		return folio.DefaultRates
	}
	return func(currency string) (decimal.Decimal, bool) {
		if rate, ok := c.Rates[currency]; ok {
			return decimal.NewFromFloat(rate), true
		}
		return folio.DefaultRates(currency)
	}
}
