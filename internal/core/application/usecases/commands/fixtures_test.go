package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// Product ids in ascending order, for tests that depend on lock order.
var (
	productID1 = kernel.MustUUIDFromString("00000000-0000-4000-8000-000000000001")
	productID2 = kernel.MustUUIDFromString("00000000-0000-4000-8000-000000000002")
	productID3 = kernel.MustUUIDFromString("00000000-0000-4000-8000-000000000003")
)

func newShipping(t *testing.T) order.ShippingInfo {
	t.Helper()
	shipping, err := order.NewShippingInfo("Ann Lee", "555-0100", "", "1 Dock Rd", "Toronto", "", "CA")
	require.NoError(t, err)
	return shipping
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Crate", 1, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Ann Lee", []order.Item{item}, newShipping(t), fixtureTime)
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.Prepare("", fixtureTime))
	o.PullEvents()
	return o
}

func newClaimedOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()
	o := newReadyOrder(t)
	require.NoError(t, o.Claim(driverID, fixtureTime))
	o.PullEvents()
	return o
}

func newDriver(t *testing.T, userID kernel.UUID) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), userID, fixtureTime)
	require.NoError(t, err)
	return d
}

func newProduct(t *testing.T, name string, price string, stock int) *product.Product {
	t.Helper()
	return newProductWithID(t, kernel.NewUUID(), name, price, stock)
}

func newProductWithID(t *testing.T, id kernel.UUID, name string, price string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, name, "", decimal.RequireFromString(price), stock, fixtureTime)
	require.NoError(t, err)
	return p
}
