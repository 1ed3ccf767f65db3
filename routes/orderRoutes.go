package routes

import (
	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, c *controllers.OrderController, requireAuth, requireAdmin gin.HandlerFunc) {
	orders := server.Group("/orders", requireAuth)
	{
		orders.GET("", c.GetOrders)
		orders.POST("", c.CreateOrder)
		orders.GET("/all", requireAdmin, c.GetAllOrders)
		orders.GET("/:id", c.GetOrder)
		orders.GET("/:id/items", c.GetOrderItems)
		orders.POST("/:id/items", c.AddOrderItems)
		orders.GET("/:id/invoice", c.GetInvoice)
		orders.PATCH("/:id", requireAdmin, c.UpdateOrder)
		orders.DELETE("/:id", requireAdmin, c.DeleteOrder)
	}
}
