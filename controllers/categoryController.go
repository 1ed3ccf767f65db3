package controllers

import (
	"net/http"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{Categories: categories}
}

func (c *CategoryController) GetCategories(ctx *gin.Context) {
	var filter models.CategoryFilter
	if !bindQuery(ctx, &filter) {
		return
	}

	categories, err := c.Categories.Fetch(ctx.Request.Context(), filter)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, categories)
}

func (c *CategoryController) GetCategory(ctx *gin.Context) {
	category, err := c.Categories.FetchByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, category)
}

func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var dto models.CategoryDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	category, err := c.Categories.Create(ctx.Request.Context(), dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, category)
}

func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var dto models.CategoryDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	category, err := c.Categories.Update(ctx.Request.Context(), ctx.Param("id"), dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, category)
}

func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.Categories.Remove(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted"})
}
