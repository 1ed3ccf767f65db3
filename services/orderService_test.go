package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/Kariqs/confectionary-api/events"
	"github.com/Kariqs/confectionary-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var shippingDetails = models.CreateOrderDTO{
	Address:    "1 Baker Street",
	Country:    "Kenya",
	City:       "Nairobi",
	PostalCode: "00100",
}

type orderFixture struct {
	db        *gorm.DB
	carts     *CartService
	orders    *OrderService
	products  *ProductService
	publisher *recordingPublisher
	user      *models.User
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	db := newTestDB(t)
	publisher := &recordingPublisher{}
	f := orderFixture{
		db:        db,
		carts:     NewCartService(db, nil),
		orders:    NewOrderService(db, publisher, InvoiceRenderer{}),
		products:  NewProductService(db, nil, nil),
		publisher: publisher,
		user:      createUser(t, db, "jane@example.com"),
	}
	_, err := f.carts.CreateCart(context.Background(), f.user)
	require.NoError(t, err)
	return f
}

func TestCreateOrderMovesCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "20.00")
	cookie := createProduct(t, f.db, "Cookie", "1.50")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{Quantity: 2})
	require.NoError(t, err)
	_, err = f.carts.BatchAddProducts(ctx, []uint{cookie.ID, cookie.ID}, f.user)
	require.NoError(t, err)

	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, order.Status)
	assert.True(t, order.TotalPrice.Equal(price("43")), order.TotalPrice.String())
	assert.Equal(t, "00100", order.PostalCode)

	left, err := f.carts.FetchItems(ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, left)

	items, err := f.orders.FetchOrderItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TopicOrderCreated, f.publisher.events[0].Topic)
	payload := f.publisher.events[0].Payload.(events.OrderEvent)
	assert.Equal(t, 3, payload.Items)
}

func TestCreateOrderKeepsPurchasePrices(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "20.00")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{})
	require.NoError(t, err)

	raised := price("25.00")
	_, err = f.products.Update(ctx, cake.ID, models.UpdateProductDTO{Price: &raised})
	require.NoError(t, err)

	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(price("20")))

	items, err := f.orders.FetchOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(price("20")))
}

func TestOrderItemsFallBackToSnapshot(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Opera cake", "30")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{})
	require.NoError(t, err)
	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)

	require.NoError(t, f.products.Remove(ctx, cake.ID))

	items, err := f.orders.FetchOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Opera cake", items[0].Title)
	assert.Equal(t, "Opera cake.png", items[0].Image)
}

func TestCreateOrderFailures(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, shippingDetails, f.user)
	assert.ErrorIs(t, err, ErrUnprocessable)

	stranger := createUser(t, f.db, "nocart@example.com")
	_, err = f.orders.Create(ctx, shippingDetails, stranger)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := f.orders.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFetchOrdersScopedToUser(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "10")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{})
	require.NoError(t, err)
	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)

	other := createUser(t, f.db, "john@example.com")

	mine, err := f.orders.Fetch(ctx, models.OrderFilter{}, f.user)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.orders.Fetch(ctx, models.OrderFilter{}, other)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.orders.FetchByID(ctx, order.ID, other)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := f.orders.FetchByID(ctx, order.ID, f.user)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	byCity, err := f.orders.Fetch(ctx, models.OrderFilter{Search: "nairobi"}, f.user)
	require.NoError(t, err)
	assert.Len(t, byCity, 1)

	paid, err := f.orders.Fetch(ctx, models.OrderFilter{Status: models.OrderPaid}, f.user)
	require.NoError(t, err)
	assert.Empty(t, paid)

	all, err := f.orders.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddOrderItems(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "10")
	pie := createProduct(t, f.db, "Pie", "4")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{})
	require.NoError(t, err)
	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)

	count, err := f.orders.AddOrderItems(ctx, order.ID, f.user)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.carts.BatchAddProducts(ctx, []uint{pie.ID, pie.ID}, f.user)
	require.NoError(t, err)

	count, err = f.orders.AddOrderItems(ctx, order.ID, f.user)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	updated, err := f.orders.FetchByID(ctx, order.ID, f.user)
	require.NoError(t, err)
	assert.True(t, updated.TotalPrice.Equal(price("18")), updated.TotalPrice.String())

	_, err = f.orders.AddOrderItems(ctx, "missing", f.user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "10")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{})
	require.NoError(t, err)
	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)

	delivered := models.OrderDelivered
	updated, err := f.orders.Update(ctx, models.UpdateOrderDTO{Status: &delivered}, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)

	processing := models.OrderProcessing
	city := "Mombasa"
	updated, err = f.orders.Update(ctx, models.UpdateOrderDTO{Status: &processing, City: &city}, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, updated.Status)
	assert.Equal(t, "Mombasa", updated.City)
	assert.Equal(t, "1 Baker Street", updated.Address)

	bogus := models.OrderStatus("LOST")
	_, err = f.orders.Update(ctx, models.UpdateOrderDTO{Status: &bogus}, order.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.orders.Update(ctx, models.UpdateOrderDTO{Status: &delivered}, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{events.TopicOrderCreated, events.TopicOrderUpdated, events.TopicOrderUpdated}, f.publisher.topics())
}

func TestRemoveOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "10")

	_, err := f.carts.BatchAddProducts(ctx, []uint{cake.ID, cake.ID}, f.user)
	require.NoError(t, err)
	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)

	require.NoError(t, f.orders.RemoveOrder(ctx, order.ID))

	var remaining int64
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	_, err = f.orders.FetchByID(ctx, order.ID, f.user)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, f.orders.RemoveOrder(ctx, order.ID), ErrNotFound)
}

func TestCreateInvoice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	cake := createProduct(t, f.db, "Cake", "12.75")

	_, err := f.carts.AddToCart(ctx, cake.ID, f.user, models.AddToCartDTO{Quantity: 2})
	require.NoError(t, err)
	order, err := f.orders.Create(ctx, shippingDetails, f.user)
	require.NoError(t, err)

	pdf, err := f.orders.CreateInvoice(ctx, f.user, order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
