package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	appcheckout "github.com/erp/seeder/internal/application/checkout"
	appsales "github.com/erp/seeder/internal/application/sales"
	"github.com/erp/seeder/internal/infrastructure/config"
	"github.com/erp/seeder/internal/infrastructure/logger"
	"github.com/erp/seeder/internal/infrastructure/persistence"
	"github.com/erp/seeder/internal/seeder"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "seeder",
		Usage: "generate synthetic customers and orders for testing",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed for reproducible runs (0 = time-based)",
			},
		},
		Commands: []*cli.Command{
			customerCommand(),
			orderCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func customerCommand() *cli.Command {
	return &cli.Command{
		Name:  "customer",
		Usage: "generate fake customers",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"c"}, Value: 1, Usage: "number of customers to generate"},
			&cli.StringFlag{Name: "website", Usage: "website code (defaults to the store's website)"},
			&cli.StringFlag{Name: "store", Usage: "store code (defaults to the default store)"},
			&cli.StringFlag{Name: "locale", Usage: "faker locale, e.g. en_US or de_DE"},
			&cli.StringFlag{Name: "group", Usage: "customer group code"},
			&cli.BoolFlag{Name: "with-addresses", Value: true, Usage: "also generate addresses"},
			&cli.IntFlag{Name: "address-count", Value: 1, Usage: "addresses per customer"},
			&cli.StringSliceFlag{Name: "attr", Usage: "fixed attribute override, key=value (repeatable)"},
		},
		Action: runCustomer,
	}
}

func runCustomer(c *cli.Context) error {
	env, err := newEnvironment(c.Int64("seed"))
	if err != nil {
		return err
	}
	defer env.close()

	attributes, err := parseAttrFlags(c.StringSlice("attr"))
	if err != nil {
		return err
	}
	if group := c.String("group"); group != "" {
		attributes["group_code"] = group
	}
	overrides, err := seeder.ParseCustomerOverrides(attributes)
	if err != nil {
		return err
	}

	cfg := seeder.CustomerRunConfig{
		Count:         c.Int("count"),
		WebsiteCode:   c.String("website"),
		StoreCode:     c.String("store"),
		Locale:        c.String("locale"),
		WithAddresses: c.Bool("with-addresses"),
		AddressCount:  c.Int("address-count"),
		Overrides:     overrides,
	}

	fmt.Printf("Generating %d customer(s)...\n", max(cfg.Count, 1))
	result, err := env.customers.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	printResult(result)
	if !result.Success {
		return cli.Exit("customer generation failed", 1)
	}
	return nil
}

func orderCommand() *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "generate fake orders",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"c"}, Value: 10, Usage: "number of orders to generate"},
			&cli.StringFlag{Name: "store", Usage: "store code (defaults to the default store)"},
			&cli.StringFlag{Name: "locale", Usage: "faker locale for guest data"},
			&cli.StringSliceFlag{Name: "sku", Usage: "restrict orders to these SKUs (repeatable)"},
			&cli.StringFlag{Name: "customer-type", Usage: "guest, new, existing, or random"},
			&cli.StringFlag{Name: "customer-id", Usage: "pin all orders to this customer ID"},
			&cli.StringFlag{Name: "customer-email", Usage: "pin all orders to this customer email"},
			&cli.StringFlag{Name: "shipping-method", Usage: "preferred shipping method code"},
			&cli.StringFlag{Name: "payment-method", Usage: "preferred payment method code"},
			&cli.BoolFlag{Name: "with-invoice", Usage: "always invoice generated orders"},
			&cli.BoolFlag{Name: "with-shipment", Usage: "always ship generated orders"},
			&cli.StringFlag{Name: "tag", Usage: "tag to mark generated orders with"},
			&cli.StringFlag{Name: "currency", Usage: "currency code for generated orders"},
			&cli.StringFlag{Name: "product-type", Usage: "restrict product selection to a type"},
			&cli.IntFlag{Name: "item-count", Usage: "items per order"},
			&cli.BoolFlag{Name: "with-discount", Usage: "apply a discount to generated orders"},
			&cli.BoolFlag{Name: "tax-exempt", Usage: "mark generated orders tax exempt"},
			&cli.BoolFlag{Name: "partial-invoice", Usage: "invoice orders partially"},
			&cli.BoolFlag{Name: "multi-address", Usage: "use distinct billing and shipping addresses"},
			&cli.StringFlag{Name: "order-status", Usage: "target order status"},
		},
		Action: runOrder,
	}
}

func runOrder(c *cli.Context) error {
	env, err := newEnvironment(c.Int64("seed"))
	if err != nil {
		return err
	}
	defer env.close()

	customerType, err := seeder.ParseCustomerType(c.String("customer-type"))
	if err != nil {
		return err
	}

	cfg := seeder.OrderRunConfig{
		Count:          c.Int("count"),
		StoreCode:      c.String("store"),
		Locale:         c.String("locale"),
		SKUs:           c.StringSlice("sku"),
		CustomerType:   customerType,
		CustomerEmail:  c.String("customer-email"),
		ShippingMethod: c.String("shipping-method"),
		PaymentMethod:  c.String("payment-method"),
		ForceInvoice:   c.Bool("with-invoice"),
		ForceShipment:  c.Bool("with-shipment"),
		Tag:            c.String("tag"),
		Currency:       c.String("currency"),
		ProductType:    c.String("product-type"),
		ItemCount:      c.Int("item-count"),
		WithDiscount:   c.Bool("with-discount"),
		TaxExempt:      c.Bool("tax-exempt"),
		PartialInvoice: c.Bool("partial-invoice"),
		MultiAddress:   c.Bool("multi-address"),
		TargetStatus:   c.String("order-status"),
	}
	if idStr := c.String("customer-id"); idStr != "" {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return fmt.Errorf("invalid customer-id %q: %w", idStr, parseErr)
		}
		cfg.CustomerID = &id
	}

	fmt.Printf("Generating %d order(s)...\n", max(cfg.Count, 1))
	result, err := env.orders.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	printResult(result)
	if !result.Success {
		return cli.Exit("order generation failed", 1)
	}
	return nil
}

// environment bundles everything a CLI run needs
type environment struct {
	log       *zap.Logger
	db        *persistence.Database
	customers *seeder.CustomerGenerator
	orders    *seeder.OrderGenerator
}

func newEnvironment(seed int64) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := persistence.SeedSandbox(context.Background(), db.DB, log); err != nil {
		return nil, fmt.Errorf("failed to seed sandbox data: %w", err)
	}

	storeManager := persistence.NewGormStoreManager(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	groupRepo := persistence.NewGormGroupRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	sequence := persistence.NewGormSequenceGenerator(db.DB)
	registry := persistence.NewGormMethodRegistry(db.DB)
	rateCollector := persistence.NewTableRateCollector(db.DB)
	accounts := persistence.NewBcryptAccountService(customerRepo)

	cartService := appcheckout.NewCartService(quoteRepo, orderRepo, sequence)
	invoiceService := appsales.NewInvoiceService(orderRepo, invoiceRepo, sequence)
	shipmentService := appsales.NewShipmentService(orderRepo, shipmentRepo, sequence)
	creditmemoService := appsales.NewCreditmemoService(log)

	settings := cfg.SeederSettings()
	chance := seeder.NewChanceSource(seed)

	customerGen := seeder.NewCustomerGenerator(
		storeManager, customerRepo, addressRepo, groupRepo, accounts,
		settings, chance, log,
	)
	orderGen := seeder.NewOrderGenerator(
		storeManager, customerRepo, addressRepo, productRepo,
		quoteRepo, rateCollector, registry,
		cartService, invoiceService, shipmentService, creditmemoService,
		customerGen, settings, chance, log,
	)
	if seed != 0 {
		customerGen.SetFakerSeed(uint64(seed))
		orderGen.SetFakerSeed(uint64(seed))
	}

	return &environment{
		log:       log,
		db:        db,
		customers: customerGen,
		orders:    orderGen,
	}, nil
}

func (e *environment) close() {
	if err := e.db.Close(); err != nil {
		e.log.Error("Error closing database", zap.Error(err))
	}
	_ = logger.Sync(e.log)
}

// parseAttrFlags turns repeated key=value flags into an attribute map
func parseAttrFlags(pairs []string) (map[string]string, error) {
	attributes := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid attribute %q, expected key=value", pair)
		}
		attributes[key] = value
	}
	return attributes, nil
}

func printResult(result *seeder.Result) {
	fmt.Printf("Requested: %v  Generated: %d  Failed: %d\n",
		result.Metadata[seeder.MetaTotalRequested], result.Generated(), result.Failed())

	for _, warning := range result.Warnings {
		fmt.Println("  warning:", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Println("  error:", errMsg)
	}

	if result.Success {
		fmt.Println("Done.")
	}
}
