package routes

import (
	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, c *controllers.CartController, requireAuth gin.HandlerFunc) {
	cart := server.Group("/cart", requireAuth)
	{
		cart.GET("", c.GetCart)
		cart.POST("", c.CreateCart)
		cart.DELETE("", c.ClearCart)
		cart.GET("/items", c.GetCartItems)
		cart.POST("/batch", c.BatchAddProducts)
		cart.DELETE("/remove", c.ClearCart)
		cart.POST("/:productId", c.AddToCart)
		cart.DELETE("/:productId", c.RemoveCartItem)
	}
}
