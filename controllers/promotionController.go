package controllers

import (
	"fmt"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/gin-gonic/gin"
)

type PromotionController struct {
	Promotions *services.PromotionService
}

func NewPromotionController(promotions *services.PromotionService) *PromotionController {
	return &PromotionController{Promotions: promotions}
}

func (c *PromotionController) GetPromotions(ctx *gin.Context) {
	promotions, err := c.Promotions.FetchAll(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, promotions)
}

func (c *PromotionController) GetPromotion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	promotion, err := c.Promotions.FetchByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, promotion)
}

func (c *PromotionController) CreatePromotion(ctx *gin.Context) {
	var dto models.PromotionDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	promotion, err := c.Promotions.Create(ctx.Request.Context(), dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, promotion)
}

func (c *PromotionController) UpdatePromotion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var dto models.UpdatePromotionDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	promotion, err := c.Promotions.Update(ctx.Request.Context(), id, dto)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, promotion)
}

func (c *PromotionController) DeletePromotion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Promotions.Remove(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Promotion deleted"})
}

func (c *PromotionController) GetImage(ctx *gin.Context) {
	filename := ctx.Query("filename")
	if filename == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing filename")
		return
	}

	image, err := c.Promotions.OpenImage(ctx.Request.Context(), filename)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	defer image.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.DataFromReader(http.StatusOK, -1, contentType, image, nil)
}

// UploadImages stores every file under the "images" form field and reports the ones that failed.
func (c *PromotionController) UploadImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uniqueFilename := fmt.Sprintf("%s-%s", time.Now().Format("20060102150405"), filepath.Base(file.Filename))
		location, uploadErr := c.Promotions.SaveImage(ctx.Request.Context(), uniqueFilename, f, file.Header.Get("Content-Type"))
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, location)
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}

	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	sendJSONResponse(ctx, http.StatusOK, response)
}
