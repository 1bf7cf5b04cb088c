//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-salesload.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-salesload/internal/etl"
)

// Config holds all configuration for pgedge-salesload.
type Config struct {
	// Connection is the PostgreSQL connection string of the output store.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFormat selects console or json log output.
	LogFormat string `mapstructure:"log_format"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// LoadConfig holds configuration for the batch load.
type LoadConfig struct {
	// OrdersFile is the path of the orders CSV.
	OrdersFile string `mapstructure:"orders_file"`

	// ProductsFile is the path of the products CSV.
	ProductsFile string `mapstructure:"products_file"`

	// DateLayouts are the accepted OrderDate formats (Go time layouts).
	DateLayouts []string `mapstructure:"date_layouts"`

	// DuplicateProducts is "reject" or "first".
	DuplicateProducts string `mapstructure:"duplicate_products"`

	// UnmatchedProducts is "keep" or "reject".
	UnmatchedProducts string `mapstructure:"unmatched_products"`
}

// GenerateConfig holds configuration for synthetic input generation.
// Files are written to the load.orders_file and load.products_file paths.
type GenerateConfig struct {
	// Orders is the number of order rows.
	Orders int `mapstructure:"orders"`

	// Products is the number of product rows.
	Products int `mapstructure:"products"`

	// Customers is the size of the customer pool.
	Customers int `mapstructure:"customers"`

	// StartDate is the first order date (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// Days is the number of days orders are spread over.
	Days int `mapstructure:"days"`

	// UnknownProductRate is the share of orders referencing a product
	// that is not in the products file (0-1).
	UnknownProductRate float64 `mapstructure:"unknown_product_rate"`

	// Seed makes the output reproducible; 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Connection: "postgres://postgres@localhost:5432/sales",
		LogLevel:   "info",
		LogFormat:  "console",
		Load: LoadConfig{
			OrdersFile:        "orders.csv",
			ProductsFile:      "products.csv",
			DateLayouts:       append([]string(nil), etl.DefaultDateLayouts...),
			DuplicateProducts: string(etl.DuplicateReject),
			UnmatchedProducts: string(etl.UnmatchedKeep),
		},
		Generate: GenerateConfig{
			Orders:             1000,
			Products:           50,
			Customers:          200,
			StartDate:          "2024-01-01",
			Days:               365,
			UnknownProductRate: 0,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-salesload.yaml
// 3. ~/.config/pgedge-salesload/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("pgedge-salesload")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-salesload"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be 'console' or 'json'")
	}
	return nil
}

// ValidateConnection checks that an output store is configured.
func (c *Config) ValidateConnection() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.ValidateConnection(); err != nil {
		return err
	}
	if c.Load.OrdersFile == "" {
		return fmt.Errorf("orders file is required")
	}
	if c.Load.ProductsFile == "" {
		return fmt.Errorf("products file is required")
	}
	if len(c.Load.DateLayouts) == 0 {
		return fmt.Errorf("at least one date layout is required")
	}
	switch etl.DuplicatePolicy(c.Load.DuplicateProducts) {
	case etl.DuplicateReject, etl.DuplicateFirst:
	default:
		return fmt.Errorf("duplicate_products must be 'reject' or 'first'")
	}
	return c.validateUnmatched()
}

// ValidateVerify checks configuration required for the verify command.
func (c *Config) ValidateVerify() error {
	if err := c.ValidateConnection(); err != nil {
		return err
	}
	return c.validateUnmatched()
}

func (c *Config) validateUnmatched() error {
	switch etl.UnmatchedPolicy(c.Load.UnmatchedProducts) {
	case etl.UnmatchedKeep, etl.UnmatchedReject:
		return nil
	default:
		return fmt.Errorf("unmatched_products must be 'keep' or 'reject'")
	}
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.OrdersFile == "" || c.Load.ProductsFile == "" {
		return fmt.Errorf("output file paths are required")
	}
	if c.Generate.Orders < 1 {
		return fmt.Errorf("orders must be at least 1")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Generate.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	if _, err := time.Parse(time.DateOnly, c.Generate.StartDate); err != nil {
		return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
	}
	if c.Generate.UnknownProductRate < 0 || c.Generate.UnknownProductRate > 1 {
		return fmt.Errorf("unknown_product_rate must be between 0 and 1")
	}
	return nil
}

// TransformOptions converts the load settings for the transform stage.
func (c *Config) TransformOptions() etl.Options {
	return etl.Options{
		DateLayouts:       c.Load.DateLayouts,
		DuplicateProducts: etl.DuplicatePolicy(c.Load.DuplicateProducts),
		UnmatchedProducts: etl.UnmatchedPolicy(c.Load.UnmatchedProducts),
	}
}
