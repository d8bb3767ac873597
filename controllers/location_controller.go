package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"party-planner-api/config"
	"party-planner-api/models"
	"party-planner-api/utils"
)

// AddLocationRequest represents the request body for creating a location
type AddLocationRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateLocationRequest carries a partial location update
type UpdateLocationRequest struct {
	ID        uint    `json:"id" binding:"required"`
	Name      *string `json:"name"`
	IsActive  *bool   `json:"isActive"`
	IsDeleted *bool   `json:"isDeleted"`
}

// ListLocations handles GET /location - paginated location listing
func ListLocations(c *gin.Context) {
	db := config.GetDB()
	page, limit := utils.ParsePageParams(c, 10)

	query := db.Model(&models.Location{}).Where("is_deleted = ?", false)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count locations",
			},
		})
		return
	}

	pagination := utils.NewPagination(totalCount, page, limit)

	var locations []models.Location
	if err := query.Order("created_at DESC").Limit(limit).Offset(pagination.Offset()).Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch locations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       locations,
		"pagination": pagination,
	})
}

func locationNameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var existing models.Location
	err := db.Where("LOWER(name) = ? AND is_deleted = ? AND id <> ?",
		strings.ToLower(name), false, excludeID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddLocation handles POST /location/add - creates a location
func AddLocation(c *gin.Context) {
	var req AddLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Location name is required",
			},
		})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Location name cannot be empty",
			},
		})
		return
	}

	db := config.GetDB()
	taken, err := locationNameTaken(db, name, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check location name",
			},
		})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_NAME",
				"message": "Location name already exists",
			},
		})
		return
	}

	location := models.Location{Name: name, IsActive: true}
	if err := db.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create location",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    location,
	})
}

// UpdateLocation handles PUT /location/update - partial update, including
// list/unlist and soft delete
func UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Location id is required",
			},
		})
		return
	}

	db := config.GetDB()

	var location models.Location
	if err := db.First(&location, req.ID).Error; err != nil || location.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOCATION_NOT_FOUND",
				"message": "Location not found",
			},
		})
		return
	}

	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Location name cannot be empty",
				},
			})
			return
		}
		taken, err := locationNameTaken(db, name, location.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to check location name",
				},
			})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_NAME",
					"message": "Location name already exists",
				},
			})
			return
		}
		updates["name"] = name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsDeleted != nil {
		updates["is_deleted"] = *req.IsDeleted
	}

	if len(updates) > 0 {
		if err := db.Model(&location).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update location",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    location,
	})
}
