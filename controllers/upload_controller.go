package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"party-planner-api/services"
	"party-planner-api/utils"
)

// UploadImage handles POST /upload - stores a product image in S3 and
// returns its public URL
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No file was uploaded",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		code := "INVALID_FILE"
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	storage := services.GetS3Service()
	if storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_UNAVAILABLE",
				"message": "Image uploads are not configured",
			},
		})
		return
	}

	url, uploadErr := storage.UploadImage(fileHeader)
	if uploadErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload image",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url": url,
		},
	})
}
