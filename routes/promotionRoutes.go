package routes

import (
	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/gin-gonic/gin"
)

func PromotionRoutes(server *gin.Engine, c *controllers.PromotionController, requireAuth, requireAdmin gin.HandlerFunc) {
	promotions := server.Group("/promotions")
	{
		promotions.GET("", c.GetPromotions)
		promotions.GET("/image", c.GetImage)
		promotions.GET("/:id", c.GetPromotion)
		promotions.POST("", requireAuth, requireAdmin, c.CreatePromotion)
		promotions.POST("/image", requireAuth, requireAdmin, c.UploadImages)
		promotions.PATCH("/:id", requireAuth, requireAdmin, c.UpdatePromotion)
		promotions.DELETE("/:id", requireAuth, requireAdmin, c.DeletePromotion)
	}
}
