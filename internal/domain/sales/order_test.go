package sales

import (
	"testing"

	"github.com/erp/seeder/internal/domain/catalog"
	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/erp/seeder/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placedQuote builds a placed guest quote with the given product types
func placedQuote(t *testing.T, types ...catalog.ProductType) *checkout.Quote {
	t.Helper()

	website, err := store.NewWebsite("base", "Main Website")
	require.NoError(t, err)
	st, err := store.NewStore(website.ID, "default", "Default Store", "en_US")
	require.NoError(t, err)

	quote, err := checkout.NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	physical := false
	for i, typ := range types {
		p, err := catalog.NewProduct(st.ID, "SKU-"+string(rune('A'+i)), "Test Product", typ, decimal.NewFromInt(20))
		require.NoError(t, err)
		_, err = quote.AddProduct(p, 2)
		require.NoError(t, err)
		if typ.IsShippable() {
			physical = true
		}
	}

	if physical {
		quote.SetShippingRates([]checkout.ShippingRate{{
			Carrier: "flatrate", Method: "flatrate", Price: decimal.NewFromInt(5),
		}})
		require.NoError(t, quote.SetShippingMethod("flatrate_flatrate"))
	}
	require.NoError(t, quote.SetPaymentMethod("checkmo"))
	quote.CollectTotals()
	require.NoError(t, quote.MarkPlaced())
	return quote
}

func placedOrder(t *testing.T, types ...catalog.ProductType) *Order {
	t.Helper()
	order, err := NewOrderFromQuote(placedQuote(t, types...), "000000001")
	require.NoError(t, err)
	return order
}

func TestOrderState_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatePending.CanTransitionTo(OrderStateProcessing))
	assert.True(t, OrderStatePending.CanTransitionTo(OrderStateComplete))
	assert.True(t, OrderStatePending.CanTransitionTo(OrderStateCanceled))
	assert.True(t, OrderStateProcessing.CanTransitionTo(OrderStateComplete))
	assert.True(t, OrderStateProcessing.CanTransitionTo(OrderStateCanceled))

	assert.False(t, OrderStateComplete.CanTransitionTo(OrderStateCanceled))
	assert.False(t, OrderStateCanceled.CanTransitionTo(OrderStateProcessing))
	assert.False(t, OrderStateProcessing.CanTransitionTo(OrderStatePending))
}

func TestNewOrderFromQuote(t *testing.T) {
	quote := placedQuote(t, catalog.ProductTypeSimple)

	order, err := NewOrderFromQuote(quote, "000000042")
	require.NoError(t, err)

	assert.Equal(t, "000000042", order.IncrementID)
	assert.Equal(t, quote.ID, order.QuoteID)
	assert.Equal(t, OrderStatePending, order.State)
	assert.True(t, order.IsGuest)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].QtyOrdered.Equal(decimal.NewFromInt(2)))
	assert.True(t, order.Items[0].QtyInvoiced.IsZero())
	assert.True(t, order.GrandTotal.Equal(quote.GrandTotal))
	assert.True(t, order.ShippingAmount.Equal(decimal.NewFromInt(5)))
}

func TestNewOrderFromQuote_Invalid(t *testing.T) {
	_, err := NewOrderFromQuote(nil, "000000001")
	assert.Error(t, err)

	website, err := store.NewWebsite("base", "Main Website")
	require.NoError(t, err)
	st, err := store.NewStore(website.ID, "default", "Default Store", "en_US")
	require.NoError(t, err)
	open, err := checkout.NewGuestQuote(st, "guest@example.com")
	require.NoError(t, err)

	_, err = NewOrderFromQuote(open, "000000001")
	assert.Error(t, err, "order requires a placed quote")

	_, err = NewOrderFromQuote(placedQuote(t, catalog.ProductTypeSimple), "")
	assert.Error(t, err)
}

func TestOrder_InvoiceLifecycle(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeSimple)
	require.True(t, order.CanInvoice())

	inv, err := NewInvoiceForOrder(order, "INV000000001")
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, inv.ShippingAmount.Equal(decimal.NewFromInt(5)), "first invoice carries shipping")
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(45)))

	require.NoError(t, order.RegisterInvoice(inv))
	assert.Equal(t, OrderStateProcessing, order.State, "invoiced but unshipped stays processing")
	assert.True(t, order.TotalInvoiced.Equal(decimal.NewFromInt(45)))
	assert.False(t, order.CanInvoice())

	_, err = NewInvoiceForOrder(order, "INV000000002")
	assert.Error(t, err, "nothing left to invoice")
}

func TestOrder_ShipmentCompletesOrder(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeSimple)

	inv, err := NewInvoiceForOrder(order, "INV000000001")
	require.NoError(t, err)
	require.NoError(t, order.RegisterInvoice(inv))

	shp, err := NewShipmentForOrder(order, "SHP000000001")
	require.NoError(t, err)
	assert.Equal(t, "flatrate", shp.Carrier, "carrier derives from the method code")
	require.Len(t, shp.Items, 1)

	require.NoError(t, order.RegisterShipment(shp))
	assert.Equal(t, OrderStateComplete, order.State)
	require.NotNil(t, order.CompletedAt)
	assert.False(t, order.CanShip())
}

func TestOrder_VirtualCompletesOnInvoice(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeDownloadable)
	require.True(t, order.IsVirtual())
	assert.False(t, order.CanShip(), "virtual orders have nothing to ship")

	inv, err := NewInvoiceForOrder(order, "INV000000001")
	require.NoError(t, err)
	require.NoError(t, order.RegisterInvoice(inv))

	assert.Equal(t, OrderStateComplete, order.State)

	_, err = NewShipmentForOrder(order, "SHP000000001")
	assert.Error(t, err)
}

func TestOrder_ShipmentExcludesVirtualLines(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeSimple, catalog.ProductTypeDownloadable)
	require.False(t, order.IsVirtual())

	shp, err := NewShipmentForOrder(order, "SHP000000001")
	require.NoError(t, err)
	require.Len(t, shp.Items, 1, "only the physical line ships")

	require.NoError(t, order.RegisterShipment(shp))
	assert.Equal(t, OrderStateProcessing, order.State, "shipped but uninvoiced stays processing")

	inv, err := NewInvoiceForOrder(order, "INV000000001")
	require.NoError(t, err)
	require.NoError(t, order.RegisterInvoice(inv))
	assert.Equal(t, OrderStateComplete, order.State)
}

func TestOrder_Cancel(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeSimple)

	require.NoError(t, order.Cancel("test data cleanup"))
	assert.Equal(t, OrderStateCanceled, order.State)
	assert.Equal(t, "test data cleanup", order.CancelReason)
	require.NotNil(t, order.CanceledAt)

	assert.Error(t, order.Cancel("again"), "canceled is terminal")
	assert.False(t, order.CanInvoice())
	assert.False(t, order.CanShip())

	_, err := NewInvoiceForOrder(order, "INV000000001")
	assert.Error(t, err)
}

func TestInvoice_Capture(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeSimple)
	inv, err := NewInvoiceForOrder(order, "INV000000001")
	require.NoError(t, err)

	assert.Equal(t, InvoiceStateOpen, inv.State)
	require.NoError(t, inv.Capture())
	assert.Equal(t, InvoiceStatePaid, inv.State)
	assert.Error(t, inv.Capture(), "double capture must fail")
}

func TestShipment_SetTracking(t *testing.T) {
	order := placedOrder(t, catalog.ProductTypeSimple)
	shp, err := NewShipmentForOrder(order, "SHP000000001")
	require.NoError(t, err)

	shp.SetTracking("1Z999AA10123456784")
	assert.Equal(t, "1Z999AA10123456784", shp.TrackingNo)
}
