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

// AddCategoryRequest represents the request body for creating a category
type AddCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCategoryRequest carries a partial category update. The same
// endpoint handles rename, list/unlist and soft delete.
type UpdateCategoryRequest struct {
	ID        uint    `json:"id" binding:"required"`
	Name      *string `json:"name"`
	IsActive  *bool   `json:"isActive"`
	IsDeleted *bool   `json:"isDeleted"`
}

// ListCategories handles GET /category - paginated category listing.
// active=true restricts to listed categories (product-form dropdowns).
func ListCategories(c *gin.Context) {
	db := config.GetDB()
	page, limit := utils.ParsePageParams(c, 10)

	query := db.Model(&models.Category{}).Where("is_deleted = ?", false)
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
				"message": "Failed to count categories",
			},
		})
		return
	}

	pagination := utils.NewPagination(totalCount, page, limit)

	var categories []models.Category
	if err := query.Order("created_at DESC").Limit(limit).Offset(pagination.Offset()).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       categories,
		"pagination": pagination,
	})
}

// categoryNameTaken checks the whole collection for a live category with
// the name, excluding excludeID so a no-op rename passes
func categoryNameTaken(db *gorm.DB, name string, excludeID uint) (bool, error) {
	var existing models.Category
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

// AddCategory handles POST /category/add - creates a category
func AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Category name is required",
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
				"message": "Category name cannot be empty",
			},
		})
		return
	}

	db := config.GetDB()
	taken, err := categoryNameTaken(db, name, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check category name",
			},
		})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_NAME",
				"message": "Category name already exists",
			},
		})
		return
	}

	category := models.Category{Name: name, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /category/update - partial update, including
// list/unlist and soft delete
func UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Category id is required",
			},
		})
		return
	}

	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, req.ID).Error; err != nil || category.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
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
					"message": "Category name cannot be empty",
				},
			})
			return
		}
		taken, err := categoryNameTaken(db, name, category.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to check category name",
				},
			})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_NAME",
					"message": "Category name already exists",
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
		if err := db.Model(&category).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update category",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}
