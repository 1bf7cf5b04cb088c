package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesload/internal/etl"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
	"github.com/pgEdge/pgedge-salesload/internal/warehouse"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check row counts and referential integrity of the loaded store",
	Long: `Count the rows of every star schema table, count fact_sales rows whose
ProductID, CustomerID or DateID has no dimension entry, and print the
metadata of the last load. Exits non-zero when an integrity check fails.

Fact rows without a product are tolerated when load.unmatched_products
is 'keep'.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateVerify(); err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := openStore(ctx, "verify")
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	allowUnmatched := etl.UnmatchedPolicy(cfg.Load.UnmatchedProducts) == etl.UnmatchedKeep
	report, err := warehouse.Verify(ctx, conn, allowUnmatched)
	if err != nil {
		return etl.Stage("verify", err)
	}

	cmd.Println("Tables:")
	for _, c := range report.Counts {
		cmd.Printf("  %-14s %d rows\n", c.Table, c.Rows)
	}
	cmd.Println()
	cmd.Println("Foreign keys:")
	for _, o := range report.Orphans {
		status := "ok"
		if o.Rows > 0 {
			status = fmt.Sprintf("%d orphan rows", o.Rows)
			if o.Allowed {
				status += " (allowed)"
			}
		}
		cmd.Printf("  %-10s -> %-14s %s\n", o.Column, o.Dimension, status)
	}

	if len(report.Metadata) > 0 {
		cmd.Println()
		cmd.Println("Last load:")
		keys := make([]string, 0, len(report.Metadata))
		for k := range report.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			cmd.Printf("  %-20s %s\n", k, report.Metadata[k])
		}
	}

	return checkIntegrity(report)
}

// checkIntegrity logs every failing orphan check and returns an error when
// there is at least one.
func checkIntegrity(report *warehouse.Report) error {
	if report.OK() {
		return nil
	}
	for _, o := range report.Orphans {
		if o.Rows == 0 || o.Allowed {
			continue
		}
		logging.Error().
			Str("column", o.Column).
			Str("dimension", o.Dimension).
			Int64("rows", o.Rows).
			Msg("Fact rows reference missing dimension entries")
	}
	return etl.Stage("verify", fmt.Errorf("referential integrity check failed"))
}
