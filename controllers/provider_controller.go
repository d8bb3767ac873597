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

// AddProviderRequest represents the request body for creating a provider
type AddProviderRequest struct {
	Name      string `json:"name" binding:"required"`
	Company   string `json:"company" binding:"required"`
	Contact   string `json:"contact" binding:"required"`
	Locations []uint `json:"locations" binding:"required,min=1"`
}

// UpdateProviderRequest carries a partial provider update
type UpdateProviderRequest struct {
	ID        uint    `json:"id" binding:"required"`
	Name      *string `json:"name"`
	Company   *string `json:"company"`
	Contact   *string `json:"contact"`
	Locations []uint  `json:"locations"`
	IsActive  *bool   `json:"isActive"`
	IsDeleted *bool   `json:"isDeleted"`
}

// ListProviders handles GET /provider - paginated provider listing with
// locations populated
func ListProviders(c *gin.Context) {
	db := config.GetDB()
	page, limit := utils.ParsePageParams(c, 10)

	query := db.Model(&models.Provider{}).Where("is_deleted = ?", false)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", needle, needle)
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
				"message": "Failed to count providers",
			},
		})
		return
	}

	pagination := utils.NewPagination(totalCount, page, limit)

	var providers []models.Provider
	if err := query.Preload("Locations").Order("created_at DESC").
		Limit(limit).Offset(pagination.Offset()).Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch providers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       providers,
		"pagination": pagination,
	})
}

func providerNameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var existing models.Provider
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

// resolveLocations loads live locations by id, failing when any id is
// unknown or deleted
func resolveLocations(db *gorm.DB, ids []uint) ([]models.Location, error) {
	var locations []models.Location
	if err := db.Where("id IN ? AND is_deleted = ?", ids, false).Find(&locations).Error; err != nil {
		return nil, err
	}
	if len(locations) != len(ids) {
		return nil, errors.New("one or more locations do not exist")
	}
	return locations, nil
}

// AddProvider handles POST /provider/add - creates a provider with its
// serviced locations
func AddProvider(c *gin.Context) {
	var req AddProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name, company, contact and at least one location are required",
			},
		})
		return
	}

	if !utils.IsDigits(req.Contact) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Contact must be a valid number",
			},
		})
		return
	}

	db := config.GetDB()

	name := strings.TrimSpace(req.Name)
	taken, err := providerNameTaken(db, name, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check provider name",
			},
		})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_NAME",
				"message": "Provider name already exists",
			},
		})
		return
	}

	locations, err := resolveLocations(db, req.Locations)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_LOCATIONS",
				"message": "One or more locations do not exist",
			},
		})
		return
	}

	provider := models.Provider{
		Name:      name,
		Company:   strings.TrimSpace(req.Company),
		Contact:   req.Contact,
		Locations: locations,
		IsActive:  true,
	}

	if err := db.Create(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create provider",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    provider,
	})
}

// UpdateProvider handles PUT /provider/update - partial update, including
// location reassignment, list/unlist and soft delete
func UpdateProvider(c *gin.Context) {
	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Provider id is required",
			},
		})
		return
	}

	db := config.GetDB()

	var provider models.Provider
	if err := db.First(&provider, req.ID).Error; err != nil || provider.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROVIDER_NOT_FOUND",
				"message": "Provider not found",
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
					"message": "Provider name cannot be empty",
				},
			})
			return
		}
		taken, err := providerNameTaken(db, name, provider.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to check provider name",
				},
			})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_NAME",
					"message": "Provider name already exists",
				},
			})
			return
		}
		updates["name"] = name
	}
	if req.Company != nil {
		updates["company"] = strings.TrimSpace(*req.Company)
	}
	if req.Contact != nil {
		if !utils.IsDigits(*req.Contact) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Contact must be a valid number",
				},
			})
			return
		}
		updates["contact"] = *req.Contact
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsDeleted != nil {
		updates["is_deleted"] = *req.IsDeleted
	}

	if req.Locations != nil {
		if len(req.Locations) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "At least one location is required",
				},
			})
			return
		}
		locations, err := resolveLocations(db, req.Locations)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_LOCATIONS",
					"message": "One or more locations do not exist",
				},
			})
			return
		}
		if err := db.Model(&provider).Association("Locations").Replace(locations); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update provider locations",
				},
			})
			return
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&provider).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update provider",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    provider,
	})
}
