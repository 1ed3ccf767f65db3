package routes

import (
	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, c *controllers.UserController, requireAuth, requireAdmin gin.HandlerFunc) {
	users := server.Group("/users", requireAuth)
	{
		users.GET("/role", c.GetRole)
		users.PATCH("/email", c.ChangeEmail)
		users.PATCH("/changepw", c.ChangePassword)

		users.GET("", requireAdmin, c.GetUsers)
		users.GET("/:id", requireAdmin, c.GetUser)
		users.PATCH("/:id/role", requireAdmin, c.UpdateRole)
		users.DELETE("/:id", requireAdmin, c.DeleteUser)
	}
}
