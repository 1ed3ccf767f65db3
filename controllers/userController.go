package controllers

import (
	"net/http"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (c *UserController) GetUsers(ctx *gin.Context) {
	var filter models.UserFilter
	if !bindQuery(ctx, &filter) {
		return
	}

	users, err := c.Users.Fetch(ctx.Request.Context(), filter)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, users)
}

func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.Users.FetchByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) GetRole(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	role, err := c.Users.RoleOf(ctx.Request.Context(), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"role": role})
}

func (c *UserController) ChangeEmail(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var dto models.ChangeEmailDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	email, err := c.Users.ChangeEmail(ctx.Request.Context(), user, dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"email": email})
}

func (c *UserController) ChangePassword(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var dto models.ChangePasswordDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	if _, err := c.Users.ChangePassword(ctx.Request.Context(), user, dto); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (c *UserController) UpdateRole(ctx *gin.Context) {
	var dto models.UpdateRoleDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	user, err := c.Users.UpdateUserRole(ctx.Request.Context(), ctx.Param("id"), dto.Role)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.Users.Remove(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted"})
}
