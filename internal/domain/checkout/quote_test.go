package checkout

import (
	"testing"

	"github.com/erp/seeder/internal/domain/catalog"
	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/erp/seeder/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	website, err := store.NewWebsite("base", "Main Website")
	require.NoError(t, err)
	st, err := store.NewStore(website.ID, "default", "Default Store", "en_US")
	require.NoError(t, err)
	return st
}

func testCustomer(t *testing.T, st *store.Store) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(st.WebsiteID, st.ID, "jane@example.com", "Jane", "Doe")
	require.NoError(t, err)
	return c
}

func simpleProduct(t *testing.T, st *store.Store, sku string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(st.ID, sku, "Product "+sku, catalog.ProductTypeSimple, decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func virtualProduct(t *testing.T, st *store.Store, sku string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(st.ID, sku, "Product "+sku, catalog.ProductTypeVirtual, decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func testAddress() Address {
	return Address{
		FirstName: "Jane",
		LastName:  "Doe",
		Street:    "1 Main St",
		City:      "Springfield",
		Postcode:  "12345",
		CountryID: "US",
		Telephone: "555-0100",
	}
}

func TestNewCustomerQuote(t *testing.T) {
	st := testStore(t)
	c := testCustomer(t, st)

	quote, err := NewCustomerQuote(st, c)
	require.NoError(t, err)

	assert.Equal(t, st.ID, quote.StoreID)
	require.NotNil(t, quote.CustomerID)
	assert.Equal(t, c.ID, *quote.CustomerID)
	assert.Equal(t, "jane@example.com", quote.CustomerEmail)
	assert.Equal(t, QuoteStatusOpen, quote.Status)
	assert.False(t, quote.IsGuest())
	assert.Equal(t, "USD", quote.CurrencyCode)
}

func TestNewCustomerQuote_Invalid(t *testing.T) {
	st := testStore(t)

	_, err := NewCustomerQuote(nil, testCustomer(t, st))
	assert.Error(t, err)

	_, err = NewCustomerQuote(st, nil)
	assert.Error(t, err)
}

func TestNewGuestQuote(t *testing.T) {
	st := testStore(t)

	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)
	assert.True(t, quote.IsGuest())
	assert.Nil(t, quote.CustomerID)

	_, err = NewGuestQuote(st, "")
	assert.Error(t, err)
}

func TestQuote_AddProduct(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	p := simpleProduct(t, st, "SB-MUG", 25)
	item, err := quote.AddProduct(p, 2)
	require.NoError(t, err)

	assert.Equal(t, "SB-MUG", item.SKU)
	assert.True(t, item.Qty.Equal(decimal.NewFromInt(2)))
	assert.True(t, item.RowTotal.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, quote.ItemCount())
	assert.Equal(t, []string{"SB-MUG"}, quote.ItemSKUs())
}

func TestQuote_AddProduct_Rejections(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)
	p := simpleProduct(t, st, "SB-MUG", 25)

	_, err = quote.AddProduct(nil, 1)
	assert.Error(t, err)

	_, err = quote.AddProduct(p, 0)
	assert.Error(t, err)

	disabled := simpleProduct(t, st, "SB-OFF", 10)
	disabled.Status = catalog.ProductStatusDisabled
	_, err = quote.AddProduct(disabled, 1)
	assert.ErrorIs(t, err, shared.ErrOutOfStock)

	_, err = quote.AddProduct(p, 1)
	require.NoError(t, err)
	_, err = quote.AddProduct(p, 1)
	assert.Error(t, err, "duplicate product must be rejected")
}

func TestQuote_IsVirtual(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	assert.False(t, quote.IsVirtual(), "empty quote is not virtual")

	_, err = quote.AddProduct(virtualProduct(t, st, "SB-GIFT", 10), 1)
	require.NoError(t, err)
	assert.True(t, quote.IsVirtual())

	_, err = quote.AddProduct(simpleProduct(t, st, "SB-MUG", 25), 1)
	require.NoError(t, err)
	assert.False(t, quote.IsVirtual(), "a single physical item makes the quote physical")
}

func TestQuote_SetAddressesInvalidatesRates(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	quote.SetShippingRates([]ShippingRate{{Carrier: "flatrate", Method: "flatrate", Price: decimal.NewFromInt(5)}})
	assert.True(t, quote.HasRate("flatrate_flatrate"))
	assert.False(t, quote.HasRate("freeshipping_freeshipping"))

	require.NoError(t, quote.SetAddresses(testAddress(), testAddress()))
	assert.False(t, quote.HasRate("flatrate_flatrate"), "new address drops collected rates")
	assert.Empty(t, quote.ShippingRates())
}

func TestQuote_CollectTotals(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	_, err = quote.AddProduct(simpleProduct(t, st, "SB-MUG", 25), 2)
	require.NoError(t, err)
	_, err = quote.AddProduct(simpleProduct(t, st, "SB-POSTER", 10), 1)
	require.NoError(t, err)

	quote.SetShippingRates([]ShippingRate{{Carrier: "flatrate", Method: "flatrate", Price: decimal.NewFromInt(5)}})
	require.NoError(t, quote.SetShippingMethod("flatrate_flatrate"))

	quote.CollectTotals()
	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(60)))
	assert.True(t, quote.ShippingAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, quote.GrandTotal.Equal(decimal.NewFromInt(65)))
}

func TestQuote_CollectTotals_NoMatchingRate(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	_, err = quote.AddProduct(simpleProduct(t, st, "SB-MUG", 25), 1)
	require.NoError(t, err)
	require.NoError(t, quote.SetShippingMethod("flatrate_flatrate"))

	quote.CollectTotals()
	assert.True(t, quote.ShippingAmount.IsZero(), "a forced method without a rate ships for zero")
	assert.True(t, quote.GrandTotal.Equal(quote.Subtotal))
}

func TestQuote_MarkPlaced(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	err = quote.MarkPlaced()
	assert.Error(t, err, "empty quote cannot be placed")

	_, err = quote.AddProduct(simpleProduct(t, st, "SB-MUG", 25), 1)
	require.NoError(t, err)

	err = quote.MarkPlaced()
	assert.Error(t, err, "physical quote needs a shipping method")

	require.NoError(t, quote.SetShippingMethod("flatrate_flatrate"))
	err = quote.MarkPlaced()
	assert.Error(t, err, "quote needs a payment method")

	require.NoError(t, quote.SetPaymentMethod("checkmo"))
	require.NoError(t, quote.MarkPlaced())
	assert.True(t, quote.IsPlaced())

	assert.Error(t, quote.MarkPlaced(), "placing twice must fail")
}

func TestQuote_PlacedIsReadOnly(t *testing.T) {
	st := testStore(t)
	quote, err := NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	_, err = quote.AddProduct(virtualProduct(t, st, "SB-GIFT", 10), 1)
	require.NoError(t, err)
	require.NoError(t, quote.SetPaymentMethod("checkmo"))
	require.NoError(t, quote.MarkPlaced())

	_, err = quote.AddProduct(simpleProduct(t, st, "SB-MUG", 25), 1)
	assert.Error(t, err)
	assert.Error(t, quote.SetAddresses(testAddress(), testAddress()))
	assert.Error(t, quote.SetShippingMethod("flatrate_flatrate"))
	assert.Error(t, quote.SetPaymentMethod("banktransfer"))
}

func TestAddressFromCustomer(t *testing.T) {
	src := customer.Address{
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Acme",
		Street:    "1 Main St",
		City:      "Springfield",
		Region:    "IL",
		Postcode:  "12345",
		CountryID: "US",
		Telephone: "555-0100",
	}

	dst := AddressFromCustomer(src)
	assert.Equal(t, src.Street, dst.Street)
	assert.Equal(t, src.Company, dst.Company)
	assert.Equal(t, src.CountryID, dst.CountryID)
	assert.False(t, dst.IsEmpty())
	assert.True(t, Address{}.IsEmpty())
}

func TestShippingRate_Code(t *testing.T) {
	rate := ShippingRate{Carrier: "flatrate", Method: "flatrate"}
	assert.Equal(t, "flatrate_flatrate", rate.Code())
}
