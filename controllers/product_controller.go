package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"party-planner-api/config"
	"party-planner-api/models"
	"party-planner-api/utils"
)

// AddProductRequest represents the request body for creating a product
type AddProductRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	CategoryID     uint     `json:"categoryId" binding:"required"`
	ProviderID     uint     `json:"providerId" binding:"required"`
	Images         []string `json:"images"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	DatesAvailable []string `json:"datesAvailable"`
}

// UpdateProductRequest carries a partial product update
type UpdateProductRequest struct {
	ID             uint      `json:"id" binding:"required"`
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	CategoryID     *uint     `json:"categoryId"`
	ProviderID     *uint     `json:"providerId"`
	Images         *[]string `json:"images"`
	Price          *float64  `json:"price"`
	DatesAvailable *[]string `json:"datesAvailable"`
	IsActive       *bool     `json:"isActive"`
	IsDeleted      *bool     `json:"isDeleted"`
}

// validDates checks that every entry parses as a calendar date
func validDates(dates []string) bool {
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return false
		}
	}
	return true
}

// ListProducts handles GET /product - admin listing, includes unlisted
// products but never deleted ones
func ListProducts(c *gin.Context) {
	db := config.GetDB()
	page, limit := utils.ParsePageParams(c, 10)

	query := db.Model(&models.Product{}).Where("is_deleted = ?", false)
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
				"message": "Failed to count products",
			},
		})
		return
	}

	pagination := utils.NewPagination(totalCount, page, limit)

	var products []models.Product
	if err := query.Preload("Category").Preload("Provider").Order("created_at DESC").
		Limit(limit).Offset(pagination.Offset()).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": pagination,
	})
}

// GetProduct handles GET /product/:id - product detail with category,
// provider and the provider's locations populated
func GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid product id",
			},
		})
		return
	}

	db := config.GetDB()

	var product models.Product
	err := db.Preload("Category").Preload("Provider").Preload("Provider.Locations").
		Where("id = ? AND is_deleted = ?", id, false).First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// ListAllProducts handles GET /product/all-products - the public catalog.
// Only active, non-deleted products with a live category and provider are
// visible. Pagination fields are top-level on this endpoint.
func ListAllProducts(c *gin.Context) {
	db := config.GetDB()
	page, limit := utils.ParsePageParams(c, 8)

	query := db.Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("JOIN providers ON providers.id = products.provider_id").
		Where("products.is_deleted = ? AND products.is_active = ?", false, true).
		Where("categories.is_deleted = ? AND categories.is_active = ?", false, true).
		Where("providers.is_deleted = ? AND providers.is_active = ?", false, true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", needle, needle)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("products.price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("products.price <= ?", v)
		}
	}
	if category := c.Query("category"); category != "" {
		if v, err := strconv.ParseUint(category, 10, 64); err == nil {
			query = query.Where("products.category_id = ?", v)
		}
	}
	if location := c.Query("location"); location != "" {
		if v, err := strconv.ParseUint(location, 10, 64); err == nil {
			query = query.Where(
				"products.provider_id IN (SELECT provider_id FROM provider_locations WHERE location_id = ?)", v)
		}
	}
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			// datesAvailable is stored as a JSON array of date strings
			query = query.Where(`products.dates_available LIKE ?`, "%\""+date+"\"%")
		}
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count products",
			},
		})
		return
	}

	pagination := utils.NewPagination(totalCount, page, limit)

	var products []models.Product
	if err := query.Preload("Category").Preload("Provider").Order("products.created_at DESC").
		Limit(limit).Offset(pagination.Offset()).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        products,
		"totalCount":  pagination.TotalCount,
		"totalPages":  pagination.TotalPages,
		"currentPage": pagination.CurrentPage,
	})
}

// AddProduct handles POST /product/add - creates a product
func AddProduct(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product data",
				"details": err.Error(),
			},
		})
		return
	}

	if !validDates(req.DatesAvailable) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Available dates must be YYYY-MM-DD",
			},
		})
		return
	}

	db := config.GetDB()

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", req.CategoryID, false).First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CATEGORY",
				"message": "Category does not exist",
			},
		})
		return
	}

	var provider models.Provider
	if err := db.Where("id = ? AND is_deleted = ?", req.ProviderID, false).First(&provider).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PROVIDER",
				"message": "Provider does not exist",
			},
		})
		return
	}

	product := models.Product{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		ProviderID:     req.ProviderID,
		Images:         req.Images,
		Price:          req.Price,
		DatesAvailable: req.DatesAvailable,
		IsActive:       true,
	}

	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /product/update - partial update, including
// list/unlist and soft delete
func UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Product id is required",
			},
		})
		return
	}

	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, req.ID).Error; err != nil || product.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
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
					"message": "Product name cannot be empty",
				},
			})
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := db.Where("id = ? AND is_deleted = ?", *req.CategoryID, false).First(&category).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CATEGORY",
					"message": "Category does not exist",
				},
			})
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.ProviderID != nil {
		var provider models.Provider
		if err := db.Where("id = ? AND is_deleted = ?", *req.ProviderID, false).First(&provider).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_PROVIDER",
					"message": "Provider does not exist",
				},
			})
			return
		}
		updates["provider_id"] = *req.ProviderID
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must be greater than zero",
				},
			})
			return
		}
		updates["price"] = *req.Price
	}
	if req.DatesAvailable != nil {
		if !validDates(*req.DatesAvailable) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Available dates must be YYYY-MM-DD",
				},
			})
			return
		}
		product.DatesAvailable = *req.DatesAvailable
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsDeleted != nil {
		updates["is_deleted"] = *req.IsDeleted
	}

	// Serialized slice fields go through Save, scalar fields through Updates
	if err := db.Transaction(func(tx *gorm.DB) error {
		if req.Images != nil || req.DatesAvailable != nil {
			if err := tx.Model(&product).Select("images", "dates_available").Updates(&product).Error; err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /product/:id - soft-deletes a product
func DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid product id",
			},
		})
		return
	}

	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, id).Error; err != nil || product.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := db.Model(&product).Update("is_deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// ExportProducts handles GET /product/export - streams the product table
// as an Excel workbook
func ExportProducts(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	if err := db.Preload("Category").Preload("Provider").
		Where("is_deleted = ?", false).Order("id").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": "Failed to create Excel sheet",
			},
		})
		return
	}

	headers := []string{
		"ID", "Name", "Description", "Category", "Provider",
		"Price", "DatesAvailable", "Active", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(int(p.ID))
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Category.Name)
		row.AddCell().SetValue(p.Provider.Name)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(strings.Join(p.DatesAvailable, ","))
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_FAILED",
				"message": "Failed to write Excel file",
			},
		})
		return
	}
}
