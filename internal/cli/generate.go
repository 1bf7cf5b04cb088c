package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesload/internal/datagen"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
	"github.com/pgEdge/pgedge-salesload/internal/source"
)

var (
	genOrders             string
	genProducts           string
	genOrderCount         int
	genProductCount       int
	genCustomerCount      int
	genStartDate          string
	genDays               int
	genUnknownProductRate float64
	genSeed               uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write synthetic orders and products files",
	Long: `Generate an orders CSV and a products CSV with realistic product names,
categories and prices. The files are written where the load command reads
them by default, so 'generate' followed by 'load' exercises the full
pipeline.

Example:
  pgedge-salesload generate --order-count 10000 --seed 42
  pgedge-salesload generate --unknown-product-rate 0.05`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOrders, "orders", "",
		"orders CSV to write (default: orders.csv)")
	generateCmd.Flags().StringVar(&genProducts, "products", "",
		"products CSV to write (default: products.csv)")
	generateCmd.Flags().IntVar(&genOrderCount, "order-count", 0,
		"number of order rows")
	generateCmd.Flags().IntVar(&genProductCount, "product-count", 0,
		"number of product rows")
	generateCmd.Flags().IntVar(&genCustomerCount, "customer-count", 0,
		"number of distinct customers")
	generateCmd.Flags().StringVar(&genStartDate, "start-date", "",
		"first order date (YYYY-MM-DD)")
	generateCmd.Flags().IntVar(&genDays, "days", 0,
		"number of days orders are spread over")
	generateCmd.Flags().Float64Var(&genUnknownProductRate, "unknown-product-rate", -1,
		"share of orders referencing a product not in the products file (0-1)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genOrders != "" {
		cfg.Load.OrdersFile = genOrders
	}
	if genProducts != "" {
		cfg.Load.ProductsFile = genProducts
	}
	if genOrderCount > 0 {
		cfg.Generate.Orders = genOrderCount
	}
	if genProductCount > 0 {
		cfg.Generate.Products = genProductCount
	}
	if genCustomerCount > 0 {
		cfg.Generate.Customers = genCustomerCount
	}
	if genStartDate != "" {
		cfg.Generate.StartDate = genStartDate
	}
	if genDays > 0 {
		cfg.Generate.Days = genDays
	}
	if genUnknownProductRate >= 0 {
		cfg.Generate.UnknownProductRate = genUnknownProductRate
	}
	if genSeed > 0 {
		cfg.Generate.Seed = genSeed
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	start, _ := time.Parse(time.DateOnly, cfg.Generate.StartDate)
	sample := datagen.NewGenerator(cfg.Generate.Seed).Generate(datagen.SampleConfig{
		Orders:             cfg.Generate.Orders,
		Products:           cfg.Generate.Products,
		Customers:          cfg.Generate.Customers,
		Start:              start,
		Days:               cfg.Generate.Days,
		UnknownProductRate: cfg.Generate.UnknownProductRate,
	})

	if err := source.WriteProducts(cfg.Load.ProductsFile, sample.Products); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}
	if err := source.WriteOrders(cfg.Load.OrdersFile, sample.Orders); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}

	logging.Info().
		Str("orders", cfg.Load.OrdersFile).
		Str("products", cfg.Load.ProductsFile).
		Msg("Sample files written")

	return nil
}
