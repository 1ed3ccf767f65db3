package controllers

import (
	"net/http"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth  *services.AuthService
	Users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var dto models.CreateUserDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	user, err := c.Users.CreateUser(ctx.Request.Context(), dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, user)
}

func (c *AuthController) SignIn(ctx *gin.Context) {
	var dto models.LoginDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	token, err := c.Auth.SignIn(ctx.Request.Context(), dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, token)
}
