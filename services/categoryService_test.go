package services

import (
	"context"
	"testing"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, nil)
	ctx := context.Background()

	created, err := categories.Create(ctx, models.CategoryDTO{Cname: "Cookies"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = categories.Create(ctx, models.CategoryDTO{Cname: "Bread"})
	require.NoError(t, err)

	all, err := categories.Fetch(ctx, models.CategoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bread", all[0].Cname)

	found, err := categories.Fetch(ctx, models.CategoryFilter{Search: "cOOk"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	updated, err := categories.Update(ctx, created.ID, models.CategoryDTO{Cname: "Biscuits"})
	require.NoError(t, err)
	assert.Equal(t, "Biscuits", updated.Cname)

	fetched, err := categories.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biscuits", fetched.Cname)

	_, err = categories.FetchByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = categories.Update(ctx, "missing", models.CategoryDTO{Cname: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryBlankName(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryService(db, nil)
	ctx := context.Background()

	_, err := categories.Create(ctx, models.CategoryDTO{Cname: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := categories.Create(ctx, models.CategoryDTO{Cname: "Tarts"})
	require.NoError(t, err)

	_, err = categories.Update(ctx, created.ID, models.CategoryDTO{Cname: "\t"})
	assert.ErrorIs(t, err, ErrValidation)

	fetched, err := categories.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tarts", fetched.Cname)
}

func TestRemoveCategoryKeepsProducts(t *testing.T) {
	db := newTestDB(t)
	productCache, mr := newRedisCache(t)
	categories := NewCategoryService(db, productCache)
	products := NewProductService(db, productCache, nil)
	ctx := context.Background()

	seasonal, err := categories.Create(ctx, models.CategoryDTO{Cname: "Seasonal"})
	require.NoError(t, err)
	product, err := products.Create(ctx, models.CreateProductDTO{Title: "Stollen", Price: price("12"), CategoryIDs: []string{seasonal.ID}})
	require.NoError(t, err)

	_, err = products.FetchByID(ctx, product.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists("product:1"))

	require.NoError(t, categories.Remove(ctx, seasonal.ID))
	assert.False(t, mr.Exists("product:1"))

	fetched, err := products.FetchByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Categories)

	assert.ErrorIs(t, categories.Remove(ctx, seasonal.ID), ErrNotFound)
}
