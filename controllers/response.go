package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/confectionary-api/middlewares"
	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput        = "Invalid input"
	msgInternalServerError = "Internal server error"
	msgNotAuthenticated    = "User not authenticated"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	sendErrorResponse(ctx, statusCode, message)
}

// respondWithServiceError maps service errors to status codes. Unknown errors never leak their text.
func respondWithServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		sendErrorResponse(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrPreconditionFailed):
		sendErrorResponse(ctx, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, services.ErrUnprocessable):
		sendErrorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrValidation):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
	}
}

func bindJSON(ctx *gin.Context, dto any) bool {
	if err := ctx.ShouldBindJSON(dto); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return false
	}
	return true
}

func bindQuery(ctx *gin.Context, filter any) bool {
	if err := ctx.ShouldBindQuery(filter); err != nil {
		log.Println("Query bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters")
		return false
	}
	return true
}

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(value), true
}

func currentUser(ctx *gin.Context) (*models.User, bool) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
	}
	return user, ok
}
