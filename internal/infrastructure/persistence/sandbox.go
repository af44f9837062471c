package persistence

import (
	"context"

	"github.com/erp/seeder/internal/domain/catalog"
	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedSandbox populates an empty database with a default website, store,
// customer group, carriers, payment methods, and a small catalog so the
// generators have something to work against. It is a no-op when a store
// already exists.
func SeedSandbox(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&store.Store{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	website, err := store.NewWebsite("base", "Main Website")
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(website).Error; err != nil {
		return err
	}

	st, err := store.NewStore(website.ID, "default", "Default Store", "en_US")
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(st).Error; err != nil {
		return err
	}

	group, err := customer.NewGroup("general", "General")
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(group).Error; err != nil {
		return err
	}

	carriers := []struct {
		carrier, method, title string
		price                  decimal.Decimal
	}{
		{"flatrate", "flatrate", "Flat Rate", decimal.NewFromInt(5)},
		{"freeshipping", "freeshipping", "Free Shipping", decimal.Zero},
	}
	for _, c := range carriers {
		setting, err := checkout.NewCarrierSetting(st.ID, c.carrier, c.method, c.title, c.price)
		if err != nil {
			return err
		}
		setting.MethodTitle = c.title
		if err := db.WithContext(ctx).Create(setting).Error; err != nil {
			return err
		}
	}

	payments := []struct{ code, title string }{
		{checkout.PaymentMethodCheckmo, "Check / Money Order"},
		{checkout.PaymentMethodBankTransfer, "Bank Transfer"},
	}
	for _, p := range payments {
		setting, err := checkout.NewPaymentMethodSetting(st.ID, p.code, p.title)
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(setting).Error; err != nil {
			return err
		}
	}

	products := []struct {
		sku, name string
		kind      catalog.ProductType
		price     decimal.Decimal
	}{
		{"SB-TSHIRT", "Sandbox T-Shirt", catalog.ProductTypeSimple, decimal.NewFromInt(19)},
		{"SB-MUG", "Sandbox Mug", catalog.ProductTypeSimple, decimal.NewFromInt(9)},
		{"SB-POSTER", "Sandbox Poster", catalog.ProductTypeSimple, decimal.NewFromInt(14)},
		{"SB-EBOOK", "Sandbox E-Book", catalog.ProductTypeDownloadable, decimal.NewFromInt(7)},
		{"SB-GIFTCARD", "Sandbox Gift Card", catalog.ProductTypeVirtual, decimal.NewFromInt(25)},
	}
	for _, p := range products {
		product, err := catalog.NewProduct(st.ID, p.sku, p.name, p.kind, p.price)
		if err != nil {
			return err
		}
		product.StockQty = decimal.NewFromInt(1000)
		if err := db.WithContext(ctx).Create(product).Error; err != nil {
			return err
		}
	}

	logger.Info("sandbox data seeded",
		zap.String("store", st.Code),
		zap.Int("products", len(products)))
	return nil
}
