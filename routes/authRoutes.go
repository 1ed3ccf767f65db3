package routes

import (
	"github.com/Kariqs/confectionary-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, c *controllers.AuthController) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", c.Signup)
		auth.POST("/signin", c.SignIn)
	}
}
