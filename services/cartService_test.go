package services

import (
	"context"
	"testing"

	"github.com/Kariqs/confectionary-api/events"
	"github.com/Kariqs/confectionary-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCartOncePerUser(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db, nil)
	user := createUser(t, db, "jane@example.com")
	ctx := context.Background()

	_, err := carts.FetchCart(ctx, user)
	assert.ErrorIs(t, err, ErrNotFound)

	cart, err := carts.CreateCart(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)

	_, err = carts.CreateCart(ctx, user)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	fetched, err := carts.FetchCart(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, fetched.ID)
}

func TestInsertCartDuplicateUser(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "jane@example.com")
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID}).Error)

	err := insertCart(db, &models.Cart{UserID: user.ID})
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddToCartSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	publisher := &recordingPublisher{}
	carts := NewCartService(db, publisher)
	products := NewProductService(db, nil, nil)
	user := createUser(t, db, "jane@example.com")
	product := createProduct(t, db, "Eclair", "4.00")
	ctx := context.Background()

	_, err := carts.AddToCart(ctx, product.ID, user, models.AddToCartDTO{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = carts.CreateCart(ctx, user)
	require.NoError(t, err)

	item, err := carts.AddToCart(ctx, product.ID, user, models.AddToCartDTO{})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Price.Equal(price("4")))

	newPrice := price("5.25")
	_, err = products.Update(ctx, product.ID, models.UpdateProductDTO{Price: &newPrice})
	require.NoError(t, err)

	items, err := carts.FetchItems(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(price("4")))

	joined, err := carts.FetchCartItems(ctx, user)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.True(t, joined[0].Price.Equal(price("4")))

	current, err := carts.FetchProductPrice(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, current.Equal(newPrice))

	_, err = carts.AddToCart(ctx, 999, user, models.AddToCartDTO{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = carts.AddToCart(ctx, product.ID, user, models.AddToCartDTO{Quantity: -2})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []string{events.TopicCartItemAdded}, publisher.topics())
}

func TestFetchCartItemsJoinsProducts(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db, nil)
	user := createUser(t, db, "jane@example.com")
	product := createProduct(t, db, "Baklava", "7.50")
	ctx := context.Background()

	_, err := carts.CreateCart(ctx, user)
	require.NoError(t, err)
	_, err = carts.AddToCart(ctx, product.ID, user, models.AddToCartDTO{Quantity: 3})
	require.NoError(t, err)

	items, err := carts.FetchCartItems(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Baklava", items[0].Title)
	assert.Equal(t, "Baklava.png", items[0].Image)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.True(t, items[0].Price.Equal(price("7.50")))
}

func TestBatchAddProducts(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db, nil)
	user := createUser(t, db, "jane@example.com")
	a := createProduct(t, db, "Donut", "1.20")
	b := createProduct(t, db, "Churro", "2.00")
	c := createProduct(t, db, "Pretzel", "3.10")
	ctx := context.Background()

	_, err := carts.CreateCart(ctx, user)
	require.NoError(t, err)

	ids := []uint{a.ID, a.ID, b.ID, c.ID, c.ID, c.ID}
	items, err := carts.BatchAddProducts(ctx, ids, user)
	require.NoError(t, err)
	require.Len(t, items, len(ids))

	counts := map[uint]int{}
	for _, item := range items {
		counts[item.ProductID]++
		assert.Equal(t, 1, item.Quantity)
		assert.NotEmpty(t, item.ID)
	}
	assert.Equal(t, map[uint]int{a.ID: 2, b.ID: 1, c.ID: 3}, counts)

	stored, err := carts.FetchItems(ctx, user)
	require.NoError(t, err)
	assert.Len(t, stored, len(ids))
}

func TestBatchAddProductsIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db, nil)
	user := createUser(t, db, "jane@example.com")
	a := createProduct(t, db, "Donut", "1.20")
	ctx := context.Background()

	_, err := carts.CreateCart(ctx, user)
	require.NoError(t, err)

	_, err = carts.BatchAddProducts(ctx, []uint{a.ID, 999}, user)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = carts.BatchAddProducts(ctx, nil, user)
	assert.ErrorIs(t, err, ErrValidation)

	stored, err := carts.FetchItems(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRemoveCartItemDeletesOneRow(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db, nil)
	user := createUser(t, db, "jane@example.com")
	a := createProduct(t, db, "Donut", "1.20")
	b := createProduct(t, db, "Churro", "2.00")
	ctx := context.Background()

	_, err := carts.CreateCart(ctx, user)
	require.NoError(t, err)
	_, err = carts.BatchAddProducts(ctx, []uint{a.ID, a.ID, b.ID}, user)
	require.NoError(t, err)

	require.NoError(t, carts.RemoveCartItem(ctx, a.ID, user))

	items, err := carts.FetchItems(ctx, user)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, carts.RemoveCartItem(ctx, a.ID, user))
	assert.ErrorIs(t, carts.RemoveCartItem(ctx, a.ID, user), ErrNotFound)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db, nil)
	user := createUser(t, db, "jane@example.com")
	other := createUser(t, db, "john@example.com")
	a := createProduct(t, db, "Donut", "1.20")
	ctx := context.Background()

	_, err := carts.ClearCart(ctx, user)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, u := range []*models.User{user, other} {
		_, err := carts.CreateCart(ctx, u)
		require.NoError(t, err)
		_, err = carts.BatchAddProducts(ctx, []uint{a.ID, a.ID}, u)
		require.NoError(t, err)
	}

	affected, err := carts.ClearCart(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	affected, err = carts.ClearCart(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, affected)

	untouched, err := carts.FetchItems(ctx, other)
	require.NoError(t, err)
	assert.Len(t, untouched, 2)
}
