package routes

import (
	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, c *controllers.ProductController, requireAuth, requireAdmin gin.HandlerFunc) {
	server.GET("/product", c.GetProducts)
	server.GET("/product/:id", c.GetProduct)
	server.POST("/product", requireAuth, requireAdmin, c.CreateProduct)
	server.PATCH("/product/:id", requireAuth, requireAdmin, c.UpdateProduct)
	server.DELETE("/product/:id", requireAuth, requireAdmin, c.DeleteProduct)
}

func CategoryRoutes(server *gin.Engine, c *controllers.CategoryController, requireAuth, requireAdmin gin.HandlerFunc) {
	server.GET("/category", c.GetCategories)
	server.GET("/category/:id", c.GetCategory)
	server.POST("/category", requireAuth, requireAdmin, c.CreateCategory)
	server.PATCH("/category/:id", requireAuth, requireAdmin, c.UpdateCategory)
	server.DELETE("/category/:id", requireAuth, requireAdmin, c.DeleteCategory)
}
