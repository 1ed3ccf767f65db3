package controllers

import (
	"net/http"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

func (c *CartController) GetCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	cart, err := c.Carts.FetchCart(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, cart)
}

func (c *CartController) CreateCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	cart, err := c.Carts.CreateCart(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, cart)
}

func (c *CartController) GetCartItems(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	items, err := c.Carts.FetchCartItems(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, items)
}

// AddToCart accepts an empty body, which adds a single unit.
func (c *CartController) AddToCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := uintParam(ctx, "productId")
	if !ok {
		return
	}

	var dto models.AddToCartDTO
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &dto) {
		return
	}

	item, err := c.Carts.AddToCart(ctx.Request.Context(), productID, user, dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, item)
}

func (c *CartController) BatchAddProducts(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var dto models.BatchAddDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	items, err := c.Carts.BatchAddProducts(ctx.Request.Context(), dto.ProductIDs, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, items)
}

func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := uintParam(ctx, "productId")
	if !ok {
		return
	}

	if err := c.Carts.RemoveCartItem(ctx.Request.Context(), productID, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	affected, err := c.Carts.ClearCart(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"affected": affected})
}
