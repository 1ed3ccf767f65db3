package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DefaultController struct {
	DB *gorm.DB
}

func NewDefaultController(db *gorm.DB) *DefaultController {
	return &DefaultController{DB: db}
}

func (c *DefaultController) GetHome(ctx *gin.Context) {
	message := `Welcome to the Confectionary API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/signin" - Get an access token

PRODUCT
- GET "/product" - List products (status, search, category, page, limit)
- GET "/product/:id" - Get product by ID
- POST | PATCH | DELETE "/product" - Manage products (admin)

CATEGORY
- GET "/category" - List categories (search)
- GET "/category/:id" - Get category by ID
- POST | PATCH | DELETE "/category" - Manage categories (admin)

CART
- GET | POST | DELETE "/cart" - Read, create or empty the cart
- GET "/cart/items" - Cart items with product details
- POST "/cart/batch" - Add several products at once
- POST | DELETE "/cart/:productId" - Add or remove a product

ORDER
- GET | POST "/orders" - List or place orders
- GET "/orders/:id" - Get order by ID
- GET "/orders/:id/items" - Order items
- GET "/orders/:id/invoice" - Invoice as PDF
- GET "/orders/all" - All orders (admin)
- PATCH | DELETE "/orders/:id" - Manage orders (admin)

PROMOTIONS
- GET "/promotions" - List promotions
- GET "/promotions/image?filename=" - Promotion image

USERS
- GET "/users/role" - Current role
- PATCH "/users/email" | "/users/changepw" - Account settings
- GET | PATCH | DELETE "/users/:id" - Manage users (admin)`

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": message,
	})
}

func (c *DefaultController) Health(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		respondWithError(ctx, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "ok"})
}
