//-------------------------------------------------------------------------
//
// pgEdge Sales Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-salesload.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesload/internal/config"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
	"github.com/pgEdge/pgedge-salesload/internal/warehouse"
	"github.com/pgEdge/pgedge-salesload/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string
	logFormat  string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-salesload",
		Short: "Load order and product files into a PostgreSQL sales star schema",
		Long: `pgedge-salesload reads an orders CSV and a products CSV, derives revenue
and calendar parts for every order line, and replaces the contents of a
star schema (fact_sales with dim_products, dim_date and dim_customers)
in PostgreSQL.

Every run is a full refresh: the tables are rebuilt from the input files
inside one transaction, so a failed run leaves the previous load intact.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-salesload.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string of the output store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (console, json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(tablesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogFormat != "json",
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Describe the star schema tables",
	Long: `Print the tables and columns written by the load command. Reporting
and BI tools depend on these names and key types.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range warehouse.Tables() {
			cmd.Printf("%s - %s\n", t.Name, t.Description)
			for _, c := range t.Columns {
				line := "  " + padRight(c.Name, 12) + " " + padRight(c.Type, 8)
				if c.Key != "" {
					line += " " + c.Key
				}
				cmd.Println(strings.TrimRight(line, " "))
			}
			cmd.Println()
		}
	},
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
