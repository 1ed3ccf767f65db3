package controllers

import (
	"net/http"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	var filter models.ProductFilter
	if !bindQuery(ctx, &filter) {
		return
	}

	products, err := c.Products.Fetch(ctx.Request.Context(), filter)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.Products.FetchByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var dto models.CreateProductDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	product, err := c.Products.Create(ctx.Request.Context(), dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var dto models.UpdateProductDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	product, err := c.Products.Update(ctx.Request.Context(), id, dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Products.Remove(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted"})
}
