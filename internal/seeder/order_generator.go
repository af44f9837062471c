package seeder

import (
	"context"
	"fmt"
	"strings"

	appcheckout "github.com/erp/seeder/internal/application/checkout"
	appsales "github.com/erp/seeder/internal/application/sales"
	"github.com/erp/seeder/internal/domain/catalog"
	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/sales"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/erp/seeder/internal/domain/store"
	"go.uber.org/zap"
)

// Product pool limits for random selection
const (
	maxSaleablePool    = 20
	maxProductsInOrder = 5
	maxQtyPerItem      = 3
	customerPageSize   = 100
)

// OrderGenerator orchestrates the order workflow: cart creation,
// product selection, address assignment, shipping and payment
// resolution with fallback chains, placement, and probabilistic
// post-order side effects.
type OrderGenerator struct {
	stores      store.Manager
	customers   customer.Repository
	addresses   customer.AddressRepository
	products    catalog.ProductRepository
	quotes      checkout.QuoteRepository
	rates       checkout.RateCollector
	registry    checkout.MethodRegistry
	cart        *appcheckout.CartService
	invoices    *appsales.InvoiceService
	shipments   *appsales.ShipmentService
	creditmemos *appsales.CreditmemoService
	customerGen *CustomerGenerator
	settings    Settings
	chance      *ChanceSource
	logger      *zap.Logger
	fakers      *fakerPool
}

// NewOrderGenerator creates a new OrderGenerator
func NewOrderGenerator(
	stores store.Manager,
	customers customer.Repository,
	addresses customer.AddressRepository,
	products catalog.ProductRepository,
	quotes checkout.QuoteRepository,
	rates checkout.RateCollector,
	registry checkout.MethodRegistry,
	cart *appcheckout.CartService,
	invoices *appsales.InvoiceService,
	shipments *appsales.ShipmentService,
	creditmemos *appsales.CreditmemoService,
	customerGen *CustomerGenerator,
	settings Settings,
	chance *ChanceSource,
	logger *zap.Logger,
) *OrderGenerator {
	return &OrderGenerator{
		stores:      stores,
		customers:   customers,
		addresses:   addresses,
		products:    products,
		quotes:      quotes,
		rates:       rates,
		registry:    registry,
		cart:        cart,
		invoices:    invoices,
		shipments:   shipments,
		creditmemos: creditmemos,
		customerGen: customerGen,
		settings:    settings,
		chance:      chance,
		logger:      logger,
		fakers:      newFakerPool(),
	}
}

// SetFakerSeed fixes the faker seed for reproducible runs. Must be
// called before the first generation.
func (g *OrderGenerator) SetFakerSeed(seed uint64) {
	g.fakers.SetSeed(seed)
}

// Generate runs an order generation batch. Precondition failures
// return an error before any order is attempted; per-order failures
// are recorded with their ordinal position and the batch continues.
func (g *OrderGenerator) Generate(ctx context.Context, cfg OrderRunConfig) (*Result, error) {
	cfg.Normalize()

	if !g.settings.Enabled {
		return nil, shared.NewDomainError("MODULE_DISABLED", "Entity generation is disabled by configuration")
	}
	if !cfg.CustomerType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_TYPE",
			fmt.Sprintf("Unknown customer type %q", cfg.CustomerType))
	}

	st, err := g.resolveStore(ctx, cfg.StoreCode)
	if err != nil {
		return nil, err
	}

	locale := cfg.Locale
	if locale == "" {
		locale = st.Locale
	}
	if !g.settings.LocaleAllowed(locale) {
		return nil, shared.NewDomainError("INVALID_LOCALE",
			fmt.Sprintf("Locale %s is not allowed for generation", locale))
	}

	g.logger.Info("starting order generation",
		zap.Int("count", cfg.Count),
		zap.String("store", st.Code),
		zap.String("customer_type", string(cfg.CustomerType)),
	)

	result := NewResult("order")
	var refs []EntityRef

	for i := 0; i < cfg.Count; i++ {
		order, err := g.generateSingleOrder(ctx, st, locale, cfg, result)
		if err != nil {
			g.logger.Error("failed to generate order", zap.Error(err))
			result.AddError(fmt.Sprintf("Order %d: %s", i+1, err.Error()))
			continue
		}

		g.processPostCreation(ctx, order, cfg)
		refs = append(refs, EntityRef{ID: order.ID, IncrementID: order.IncrementID})
	}

	result.Success = len(refs) > 0
	result.SetMeta(MetaTotalRequested, cfg.Count)
	result.SetMeta(MetaTotalGenerated, len(refs))
	result.SetMeta(MetaTotalFailed, len(result.Errors))
	result.SetMeta(MetaOrders, refs)
	return result, nil
}

func (g *OrderGenerator) resolveStore(ctx context.Context, storeCode string) (*store.Store, error) {
	if storeCode != "" {
		return g.stores.FindByCode(ctx, storeCode)
	}
	return g.stores.DefaultStore(ctx)
}

// generateSingleOrder resolves a customer and drives one quote through
// to placement. Any failure aborts this attempt only.
func (g *OrderGenerator) generateSingleOrder(
	ctx context.Context,
	st *store.Store,
	locale string,
	cfg OrderRunConfig,
	result *Result,
) (*sales.Order, error) {
	// explicit customer pin wins over the type mode
	if cfg.CustomerID != nil {
		c, err := g.customers.FindByID(ctx, *cfg.CustomerID)
		if err != nil {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND",
				fmt.Sprintf("Customer with ID %s not found", cfg.CustomerID))
		}
		return g.orderForCustomer(ctx, st, locale, c, cfg, result)
	}
	if cfg.CustomerEmail != "" {
		c, err := g.customers.FindByEmail(ctx, st.WebsiteID, cfg.CustomerEmail)
		if err != nil {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND",
				fmt.Sprintf("Customer with email %s not found", cfg.CustomerEmail))
		}
		return g.orderForCustomer(ctx, st, locale, c, cfg, result)
	}

	switch cfg.CustomerType {
	case CustomerTypeGuest:
		return g.orderForGuest(ctx, st, locale, cfg, result)

	case CustomerTypeNew:
		return g.orderForNewCustomer(ctx, st, locale, cfg, result)

	case CustomerTypeExisting:
		c, err := g.randomExistingCustomer(ctx, st)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "No existing customers found")
		}
		return g.orderForCustomer(ctx, st, locale, c, cfg, result)

	default: // random: 1/3 guest, 1/3 existing (falling through to new), else new
		switch g.chance.Between(1, 3) {
		case 1:
			return g.orderForGuest(ctx, st, locale, cfg, result)
		case 2:
			c, err := g.randomExistingCustomer(ctx, st)
			if err != nil {
				return nil, err
			}
			if c != nil {
				return g.orderForCustomer(ctx, st, locale, c, cfg, result)
			}
		}
		return g.orderForNewCustomer(ctx, st, locale, cfg, result)
	}
}

func (g *OrderGenerator) orderForCustomer(
	ctx context.Context,
	st *store.Store,
	locale string,
	c *customer.Customer,
	cfg OrderRunConfig,
	result *Result,
) (*sales.Order, error) {
	quote, err := checkout.NewCustomerQuote(st, c)
	if err != nil {
		return nil, err
	}

	if err := g.addProducts(ctx, quote, st, cfg, result); err != nil {
		return nil, err
	}
	if err := g.setCustomerAddresses(ctx, quote, st, locale, c); err != nil {
		return nil, err
	}
	if err := g.resolveShippingAndPayment(ctx, quote, st, cfg); err != nil {
		return nil, err
	}
	return g.placeOrder(ctx, quote)
}

func (g *OrderGenerator) orderForGuest(
	ctx context.Context,
	st *store.Store,
	locale string,
	cfg OrderRunConfig,
	result *Result,
) (*sales.Order, error) {
	faker := g.fakers.For(locale)
	quote, err := checkout.NewGuestQuote(st, g.guestEmail(faker))
	if err != nil {
		return nil, err
	}

	if err := g.addProducts(ctx, quote, st, cfg, result); err != nil {
		return nil, err
	}
	g.setGuestAddresses(quote, st, faker)
	if err := g.resolveShippingAndPayment(ctx, quote, st, cfg); err != nil {
		return nil, err
	}
	return g.placeOrder(ctx, quote)
}

func (g *OrderGenerator) orderForNewCustomer(
	ctx context.Context,
	st *store.Store,
	locale string,
	cfg OrderRunConfig,
	result *Result,
) (*sales.Order, error) {
	c, err := g.customerGen.GenerateOne(ctx, CustomerRunConfig{
		StoreCode:     st.Code,
		Locale:        locale,
		WithAddresses: true,
		AddressCount:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create customer for order: %w", err)
	}
	return g.orderForCustomer(ctx, st, locale, c, cfg, result)
}

func (g *OrderGenerator) randomExistingCustomer(ctx context.Context, st *store.Store) (*customer.Customer, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = customerPageSize
	candidates, err := g.customers.FindByStore(ctx, st.ID, filter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	picked := candidates[g.chance.Intn(len(candidates))]
	return &picked, nil
}

// guestEmail synthesizes the checkout email for an anonymous cart
func (g *OrderGenerator) guestEmail(faker *Faker) string {
	domain := g.settings.DefaultEmailDomain
	if domain == "" {
		domain = "example.com"
	}
	return g.settings.EmailPrefix + faker.Username() + "@" + domain
}

// addProducts fills the quote with either the explicit SKU list or a
// random selection of saleable products. Products that cannot be added
// are skipped with a warning; an empty cart fails the attempt.
func (g *OrderGenerator) addProducts(
	ctx context.Context,
	quote *checkout.Quote,
	st *store.Store,
	cfg OrderRunConfig,
	result *Result,
) error {
	skus := cfg.SKUs
	if len(skus) == 0 {
		var err error
		skus, err = g.randomProductSKUs(ctx, st, result)
		if err != nil {
			return err
		}
	}
	if len(skus) == 0 {
		return shared.NewDomainError("NO_PRODUCTS", "No products available for order generation")
	}

	for _, sku := range skus {
		product, err := g.products.FindBySKU(ctx, st.ID, sku)
		if err != nil {
			g.logger.Warn("could not load product for quote",
				zap.String("sku", sku),
				zap.Error(err),
			)
			result.AddWarning(fmt.Sprintf("Could not add product %s: %s", sku, err.Error()))
			continue
		}
		if !product.IsSaleable() {
			continue
		}

		qty := g.chance.Between(1, maxQtyPerItem)
		if _, err := quote.AddProduct(product, qty); err != nil {
			g.logger.Warn("could not add product to quote",
				zap.String("sku", sku),
				zap.Error(err),
			)
			result.AddWarning(fmt.Sprintf("Could not add product %s: %s", sku, err.Error()))
		}
	}

	if quote.ItemCount() == 0 {
		return shared.NewDomainError("NO_PRODUCTS", "No products could be added to the quote")
	}
	return nil
}

// randomProductSKUs runs the three-tier product search and picks a
// random distinct subset from the saleable pool.
func (g *OrderGenerator) randomProductSKUs(ctx context.Context, st *store.Store, result *Result) ([]string, error) {
	var pool []catalog.Product

	tiers := []catalog.SearchCriteria{
		{Types: []catalog.ProductType{catalog.ProductTypeSimple}, EnabledOnly: true, PageSize: 100},
		{EnabledOnly: true, VisibleOnly: true, PageSize: 100},
		{
			Types:       []catalog.ProductType{catalog.ProductTypeSimple, catalog.ProductTypeVirtual, catalog.ProductTypeDownloadable},
			EnabledOnly: true,
			PageSize:    50,
			Page:        g.chance.Between(1, 5),
		},
	}

	for tier, criteria := range tiers {
		products, err := g.products.Search(ctx, st.ID, criteria)
		if err != nil {
			g.logger.Warn("product search failed",
				zap.Int("tier", tier+1),
				zap.Error(err),
			)
			continue
		}
		for _, product := range products {
			if product.IsSaleable() {
				pool = append(pool, product)
				if len(pool) >= maxSaleablePool {
					break
				}
			}
		}
		if len(pool) > 0 {
			break
		}
	}

	if len(pool) == 0 {
		// last resort: any enabled products, saleable or not
		products, err := g.products.Search(ctx, st.ID, catalog.SearchCriteria{EnabledOnly: true, PageSize: 10})
		if err != nil {
			g.logger.Error("failed to find any products for order generation", zap.Error(err))
			return nil, err
		}
		for _, product := range products {
			g.logger.Warn("using potentially non-saleable product for order generation",
				zap.String("sku", product.SKU),
			)
			result.AddWarning(fmt.Sprintf("Using potentially non-saleable product %s", product.SKU))
			pool = append(pool, product)
		}
	}

	if len(pool) == 0 {
		return nil, nil
	}

	numProducts := g.chance.Between(1, min(maxProductsInOrder, len(pool)))
	g.chance.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	skus := make([]string, 0, numProducts)
	for _, product := range pool[:numProducts] {
		skus = append(skus, product.SKU)
	}

	g.logger.Info("selected products for order",
		zap.Int("pool_size", len(pool)),
		zap.Int("selected", len(skus)),
	)
	return skus, nil
}

// setCustomerAddresses copies the customer's first two saved addresses
// onto the quote; a single address serves both roles, and a customer
// without addresses falls back to synthesized guest addresses.
func (g *OrderGenerator) setCustomerAddresses(
	ctx context.Context,
	quote *checkout.Quote,
	st *store.Store,
	locale string,
	c *customer.Customer,
) error {
	saved, err := g.addresses.FindByCustomer(ctx, c.ID)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		g.setGuestAddresses(quote, st, g.fakers.For(locale))
		return nil
	}

	billing := checkout.AddressFromCustomer(saved[0])
	shipping := billing
	if len(saved) > 1 {
		shipping = checkout.AddressFromCustomer(saved[1])
	}
	return quote.SetAddresses(billing, shipping)
}

// setGuestAddresses synthesizes one address for both roles, applying
// the configured synthetic-data prefixes and the store default country
func (g *OrderGenerator) setGuestAddresses(quote *checkout.Quote, st *store.Store, faker *Faker) {
	countryID := st.DefaultCountry
	if countryID == "" {
		countryID = faker.CountryID()
	}

	firstName := g.settings.NamePrefix + faker.FirstName()
	lastName := g.settings.SurnamePrefix + faker.LastName()

	addr := checkout.Address{
		FirstName: firstName,
		LastName:  lastName,
		Street:    g.settings.AddressPrefix + faker.StreetAddress(),
		City:      faker.City(),
		Region:    faker.Region(),
		Postcode:  faker.Postcode(countryID),
		CountryID: countryID,
		Telephone: faker.Phone(),
	}

	// quote is pre-placement here, SetAddresses cannot fail
	_ = quote.SetAddresses(addr, addr)
	quote.SetCustomerName(firstName, lastName)
}

// resolveShippingAndPayment saves the quote, collects rates, resolves
// both methods through their fallback chains and persists the results.
func (g *OrderGenerator) resolveShippingAndPayment(
	ctx context.Context,
	quote *checkout.Quote,
	st *store.Store,
	cfg OrderRunConfig,
) error {
	if err := g.quotes.Save(ctx, quote); err != nil {
		return err
	}

	if quote.ShippingAddress.CountryID == "" {
		shipping := quote.ShippingAddress
		shipping.CountryID = st.DefaultCountry
		if err := quote.SetAddresses(quote.BillingAddress, shipping); err != nil {
			return err
		}
	}

	if !quote.IsVirtual() {
		rates, err := g.rates.CollectRates(ctx, quote)
		if err != nil {
			g.logger.Warn("failed to collect shipping rates", zap.Error(err))
		}
		quote.SetShippingRates(rates)

		method, err := g.resolveShippingMethod(ctx, quote, st, cfg)
		if err != nil {
			return err
		}
		if err := quote.SetShippingMethod(method); err != nil {
			return err
		}
	}

	if err := g.quotes.Save(ctx, quote); err != nil {
		return err
	}
	quote.CollectTotals()

	payment, err := g.resolvePaymentMethod(ctx, st, cfg)
	if err != nil {
		return err
	}
	if err := quote.SetPaymentMethod(payment); err != nil {
		return err
	}

	return g.quotes.Save(ctx, quote)
}

// resolveShippingMethod walks the shipping fallback chain: explicit
// method, shuffled allow-list, first collected rate, common active
// carriers, then the terminal policy.
func (g *OrderGenerator) resolveShippingMethod(
	ctx context.Context,
	quote *checkout.Quote,
	st *store.Store,
	cfg OrderRunConfig,
) (string, error) {
	if cfg.ShippingMethod != "" {
		if quote.HasRate(cfg.ShippingMethod) {
			g.logger.Debug("using configured shipping method", zap.String("method", cfg.ShippingMethod))
			return cfg.ShippingMethod, nil
		}
		g.logger.Warn("configured shipping method not available, trying fallback",
			zap.String("method", cfg.ShippingMethod),
		)
	}

	if allowed := g.settings.AllowedShippingMethods; len(allowed) > 0 {
		shuffled := make([]string, len(allowed))
		copy(shuffled, allowed)
		g.chance.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, method := range shuffled {
			if quote.HasRate(method) {
				g.logger.Debug("using allowed shipping method", zap.String("method", method))
				return method, nil
			}
		}
	}

	if rates := quote.ShippingRates(); len(rates) > 0 {
		method := rates[0].Code()
		g.logger.Debug("using first collected shipping rate", zap.String("method", method))
		return method, nil
	}

	for _, method := range checkout.CommonShippingMethods {
		carrier, _, _ := strings.Cut(method, "_")
		active, err := g.registry.IsCarrierActive(ctx, st.ID, carrier)
		if err != nil {
			g.logger.Debug("carrier lookup failed", zap.String("carrier", carrier), zap.Error(err))
			continue
		}
		if active {
			g.logger.Debug("using active carrier from store config", zap.String("method", method))
			return method, nil
		}
	}

	return g.terminalShippingMethod()
}

// terminalShippingMethod applies the end-of-chain policy: fail the
// attempt, or force the flat-rate code bypassing availability.
func (g *OrderGenerator) terminalShippingMethod() (string, error) {
	if g.settings.StrictMethodResolution {
		return "", shared.NewDomainError("NO_SHIPPING_METHOD",
			"No shipping methods available. Please enable at least one shipping method (e.g., Flat Rate).")
	}
	g.logger.Warn("no shipping methods found, defaulting to flat rate",
		zap.String("method", checkout.ShippingMethodFlatRate),
	)
	return checkout.ShippingMethodFlatRate, nil
}

// resolvePaymentMethod walks the payment fallback chain: explicit
// method, shuffled allow-list, common offline codes, each checked for
// store activation. No lenient terminal exists for payment.
func (g *OrderGenerator) resolvePaymentMethod(ctx context.Context, st *store.Store, cfg OrderRunConfig) (string, error) {
	if cfg.PaymentMethod != "" {
		active, err := g.registry.IsPaymentMethodActive(ctx, st.ID, cfg.PaymentMethod)
		if err != nil {
			return "", err
		}
		if active {
			g.logger.Debug("using configured payment method", zap.String("method", cfg.PaymentMethod))
			return cfg.PaymentMethod, nil
		}
		g.logger.Warn("configured payment method not available, trying fallback",
			zap.String("method", cfg.PaymentMethod),
		)
	}

	if allowed := g.settings.AllowedPaymentMethods; len(allowed) > 0 {
		shuffled := make([]string, len(allowed))
		copy(shuffled, allowed)
		g.chance.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, method := range shuffled {
			active, err := g.registry.IsPaymentMethodActive(ctx, st.ID, method)
			if err != nil {
				continue
			}
			if active {
				g.logger.Debug("using allowed payment method", zap.String("method", method))
				return method, nil
			}
		}
	}

	for _, method := range checkout.CommonPaymentMethods {
		active, err := g.registry.IsPaymentMethodActive(ctx, st.ID, method)
		if err != nil {
			continue
		}
		if active {
			g.logger.Debug("using common payment method", zap.String("method", method))
			return method, nil
		}
	}

	return "", shared.NewDomainError("NO_PAYMENT_METHOD",
		"No payment methods available. Please enable at least one payment method (e.g., Check/Money Order).")
}

// placeOrder runs the final guard and converts the quote into an order
func (g *OrderGenerator) placeOrder(ctx context.Context, quote *checkout.Quote) (*sales.Order, error) {
	if !quote.IsVirtual() && quote.ShippingMethod == "" {
		method, err := g.terminalShippingMethod()
		if err != nil {
			return nil, err
		}
		g.logger.Warn("no shipping method set before order placement, forcing fallback",
			zap.String("method", method),
		)
		if err := quote.SetShippingMethod(method); err != nil {
			return nil, err
		}
	}

	order, err := g.cart.PlaceOrder(ctx, quote)
	if err != nil {
		return nil, err
	}

	g.logger.Info("placed order",
		zap.String("order_id", order.ID.String()),
		zap.String("increment_id", order.IncrementID),
		zap.String("grand_total", order.GrandTotal.String()),
	)
	return order, nil
}

// processPostCreation runs the probabilistic side effects. Failures
// here are logged only, the order itself already exists.
func (g *OrderGenerator) processPostCreation(ctx context.Context, order *sales.Order, cfg OrderRunConfig) {
	if (cfg.ForceInvoice || g.chance.Happens(g.settings.InvoiceChance)) && order.CanInvoice() {
		if _, err := g.invoices.CreateForOrder(ctx, order); err != nil {
			g.logger.Error("failed to create invoice for order",
				zap.String("increment_id", order.IncrementID),
				zap.Error(err),
			)
		} else {
			g.logger.Info("created invoice for order", zap.String("increment_id", order.IncrementID))
		}
	}

	if (cfg.ForceShipment || g.chance.Happens(g.settings.ShipmentChance)) && order.CanShip() {
		if _, err := g.shipments.CreateForOrder(ctx, order); err != nil {
			g.logger.Error("failed to create shipment for order",
				zap.String("increment_id", order.IncrementID),
				zap.Error(err),
			)
		} else {
			g.logger.Info("created shipment for order", zap.String("increment_id", order.IncrementID))
		}
	}

	if g.chance.Happens(g.settings.CreditmemoChance) && order.TotalInvoiced.IsPositive() {
		if err := g.creditmemos.CreateForOrder(ctx, order); err != nil {
			g.logger.Error("failed to process credit memo for order",
				zap.String("increment_id", order.IncrementID),
				zap.Error(err),
			)
		}
	}
}
