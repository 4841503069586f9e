// Package config centralizes all application configuration into typed structs.
//
// Defaults come from NewDefaultConfig. Load layers an optional YAML file and
// RENTAL_* environment variables on top of them using spf13/viper, e.g.
//
//	RENTAL_SERVER_PORT=:9090
//	RENTAL_PRICING_LONG_RENTAL_THRESHOLD_DAYS=5
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"carrental/internal/domain/entities"
	"carrental/internal/pricing"
)

// Config is the top-level configuration container.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CategoryPricing is the per-category rule. Amounts are strings so YAML and
// env values like "1.2" reach decimal.Decimal without a float round-trip.
// An empty Multiplier means x1. An explicit "0" is rejected.
type CategoryPricing struct {
	Multiplier string `mapstructure:"multiplier"`
	Surcharge  string `mapstructure:"surcharge"`
}

// PricingConfig defines the rental cost rules:
//
//	total = (rate × days − long-rental discount) × multiplier + surcharge
type PricingConfig struct {
	LongRentalThresholdDays   int                        `mapstructure:"long_rental_threshold_days"`
	LongRentalDiscountPercent string                     `mapstructure:"long_rental_discount_percent"`
	Categories                map[string]CategoryPricing `mapstructure:"categories"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// NewDefaultConfig returns a Config populated with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Pricing: PricingConfig{
			LongRentalThresholdDays:   7,
			LongRentalDiscountPercent: "10",
			Categories: map[string]CategoryPricing{
				string(entities.CategoryEconomy): {Multiplier: "1"},
				string(entities.CategorySUV):     {Multiplier: "1.1"},
				string(entities.CategoryLuxury):  {Multiplier: "1.2"},
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path (if non-empty) and the environment,
// falling back to NewDefaultConfig for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewDefaultConfig())

	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("pricing.long_rental_threshold_days", d.Pricing.LongRentalThresholdDays)
	v.SetDefault("pricing.long_rental_discount_percent", d.Pricing.LongRentalDiscountPercent)
	for name, rule := range d.Pricing.Categories {
		v.SetDefault("pricing.categories."+name+".multiplier", rule.Multiplier)
		v.SetDefault("pricing.categories."+name+".surcharge", rule.Surcharge)
	}
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate rejects configurations the engine can't run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	if c.Pricing.LongRentalThresholdDays < 0 {
		return errors.New("pricing.long_rental_threshold_days must not be negative")
	}
	_, err := c.RuleSet()
	return err
}

// RuleSet converts the pricing section into the rule table used by
// pricing.Policy.
func (c *Config) RuleSet() (pricing.RuleSet, error) {
	discount, err := parseAmount(c.Pricing.LongRentalDiscountPercent)
	if err != nil {
		return pricing.RuleSet{}, fmt.Errorf("pricing.long_rental_discount_percent: %w", err)
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return pricing.RuleSet{}, fmt.Errorf("pricing.long_rental_discount_percent: %s is outside 0-100", discount)
	}

	rules := pricing.RuleSet{
		Categories: make(map[entities.Category]pricing.CategoryRule, len(c.Pricing.Categories)),
		LongRental: pricing.LongRentalRule{
			ThresholdDays:   c.Pricing.LongRentalThresholdDays,
			DiscountPercent: discount,
		},
	}
	for name, cp := range c.Pricing.Categories {
		category, err := entities.ParseCategory(name)
		if err != nil {
			return pricing.RuleSet{}, fmt.Errorf("pricing.categories.%s: %w", name, err)
		}
		multiplier, err := parseAmount(cp.Multiplier)
		if err != nil {
			return pricing.RuleSet{}, fmt.Errorf("pricing.categories.%s.multiplier: %w", name, err)
		}
		surcharge, err := parseAmount(cp.Surcharge)
		if err != nil {
			return pricing.RuleSet{}, fmt.Errorf("pricing.categories.%s.surcharge: %w", name, err)
		}
		if strings.TrimSpace(cp.Multiplier) != "" && multiplier.IsZero() {
			return pricing.RuleSet{}, fmt.Errorf("pricing.categories.%s.multiplier: must be positive; leave it empty for x1", name)
		}
		if multiplier.IsNegative() || surcharge.IsNegative() {
			return pricing.RuleSet{}, fmt.Errorf("pricing.categories.%s: %w", name, entities.ErrInvalidRate)
		}
		rules.Categories[category] = pricing.CategoryRule{Multiplier: multiplier, Surcharge: surcharge}
	}
	return rules, nil
}

// parseAmount treats an empty string as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}
