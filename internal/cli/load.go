package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesload/internal/db"
	"github.com/pgEdge/pgedge-salesload/internal/etl"
	"github.com/pgEdge/pgedge-salesload/internal/logging"
	"github.com/pgEdge/pgedge-salesload/internal/source"
	"github.com/pgEdge/pgedge-salesload/internal/warehouse"
)

var (
	loadOrders            string
	loadProducts          string
	loadDuplicateProducts string
	loadUnmatchedProducts string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the orders and products files into the star schema",
	Long: `Read the orders and products files, build the product, date and
customer dimensions and the sales fact, and replace the star schema tables
in the output store.

Any invalid record, duplicate OrderID or database failure aborts the run
and leaves the store unchanged.

Example:
  pgedge-salesload load --orders orders.csv --products products.csv \
      --connection "postgres://localhost/sales"`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadOrders, "orders", "",
		"orders CSV file (default: orders.csv)")
	loadCmd.Flags().StringVar(&loadProducts, "products", "",
		"products CSV file (default: products.csv)")
	loadCmd.Flags().StringVar(&loadDuplicateProducts, "duplicate-products", "",
		"duplicate ProductID handling: reject, first")
	loadCmd.Flags().StringVar(&loadUnmatchedProducts, "unmatched-products", "",
		"orders with an unknown ProductID: keep, reject")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadOrders != "" {
		cfg.Load.OrdersFile = loadOrders
	}
	if loadProducts != "" {
		cfg.Load.ProductsFile = loadProducts
	}
	if loadDuplicateProducts != "" {
		cfg.Load.DuplicateProducts = loadDuplicateProducts
	}
	if loadUnmatchedProducts != "" {
		cfg.Load.UnmatchedProducts = loadUnmatchedProducts
	}

	// Validate configuration
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	runID := uuid.New()

	logging.Info().
		Str("run_id", runID.String()).
		Str("orders", cfg.Load.OrdersFile).
		Str("products", cfg.Load.ProductsFile).
		Msg("Starting load")

	// Read
	orders, err := source.ReadOrders(cfg.Load.OrdersFile)
	if err != nil {
		return etl.Stage("read", err)
	}
	products, err := source.ReadProducts(cfg.Load.ProductsFile)
	if err != nil {
		return etl.Stage("read", err)
	}

	// Transform
	opts := cfg.TransformOptions()
	ds, err := etl.Transform(etl.Inputs{
		OrdersSource:   cfg.Load.OrdersFile,
		Orders:         orders,
		ProductsSource: cfg.Load.ProductsFile,
		Products:       products,
	}, opts)
	if err != nil {
		return etl.Stage("transform", err)
	}
	if ds.UnmatchedOrders > 0 {
		logging.Warn().
			Int("orders", ds.UnmatchedOrders).
			Msg("Orders reference products missing from the products file")
	}

	// Write
	conn, err := openStore(ctx, "write")
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	result, err := warehouse.NewWriter(conn).Load(ctx, ds, warehouse.LoadInfo{
		RunID:                  runID,
		OrdersFile:             cfg.Load.OrdersFile,
		ProductsFile:           cfg.Load.ProductsFile,
		AllowUnmatchedProducts: opts.UnmatchedProducts == etl.UnmatchedKeep,
	})
	if err != nil {
		return etl.Stage("write", err)
	}

	logging.Info().
		Str("run_id", result.RunID.String()).
		Int64(warehouse.TableProducts, result.Rows[warehouse.TableProducts]).
		Int64(warehouse.TableDate, result.Rows[warehouse.TableDate]).
		Int64(warehouse.TableCustomers, result.Rows[warehouse.TableCustomers]).
		Int64(warehouse.TableFacts, result.Rows[warehouse.TableFacts]).
		Int("unmatched_orders", ds.UnmatchedOrders).
		Dur("elapsed", time.Since(started)).
		Msg("Load complete")

	return nil
}

// openStore connects to the output store, reporting a failure as a
// persistence error of stage.
func openStore(ctx context.Context, stage string) (*pgx.Conn, error) {
	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return nil, etl.Stage(stage, &etl.PersistenceError{Op: "open connection", Err: err})
	}
	return conn, nil
}
