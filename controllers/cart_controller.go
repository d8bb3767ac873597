package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"party-planner-api/config"
	"party-planner-api/models"
)

// AddCartItemRequest represents the request body for adding a product to
// the cart
type AddCartItemRequest struct {
	ProductID     uint     `json:"productId" binding:"required"`
	SelectedDates []string `json:"selectedDates" binding:"required,min=1"`
	LocationID    uint     `json:"locationId" binding:"required"`
}

// RemoveCartItemRequest identifies the cart line to drop
type RemoveCartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// loadCart fetches a user's cart with lines and their products populated,
// creating an empty cart on first access
func loadCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	err := db.Preload("Items").Preload("Items.Product").Preload("Items.Product.Provider").
		Preload("Items.Location").First(&cart, cart.ID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart handles GET /cart/user/:userId - the user's cart, created lazily
func GetCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid user id",
			},
		})
		return
	}

	if !canAccessUser(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot access this cart",
			},
		})
		return
	}

	cart, err := loadCart(config.GetDB(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cart,
	})
}

// AddCartItem handles POST /cart/add/:userId - upserts one line per
// product. Re-adding a product replaces its dates and location in a single
// transaction, so concurrent adds settle on the last writer's line.
func AddCartItem(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid user id",
			},
		})
		return
	}

	if !canAccessUser(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot access this cart",
			},
		})
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Product, location and at least one date are required",
			},
		})
		return
	}

	db := config.GetDB()

	var product models.Product
	err := db.Where("id = ? AND is_deleted = ? AND is_active = ?", req.ProductID, false, true).
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product is not available",
			},
		})
		return
	}

	var location models.Location
	if err := db.Where("id = ? AND is_deleted = ?", req.LocationID, false).First(&location).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_LOCATIONS",
				"message": "Location does not exist",
			},
		})
		return
	}

	available := make(map[string]bool, len(product.DatesAvailable))
	for _, d := range product.DatesAvailable {
		available[d] = true
	}
	for _, d := range req.SelectedDates {
		if !available[d] {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATE_UNAVAILABLE",
					"message": "Product is not available on " + d,
				},
			})
			return
		}
	}

	var cart models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch cart",
			},
		})
		return
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		item := models.CartItem{
			CartID:        cart.ID,
			ProductID:     req.ProductID,
			LocationID:    req.LocationID,
			SelectedDates: req.SelectedDates,
		}
		return tx.Create(&item).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add product to cart",
			},
		})
		return
	}

	updated, err := loadCart(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// RemoveCartItem handles PUT /cart/remove/:userId - drops one product line
func RemoveCartItem(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid user id",
			},
		})
		return
	}

	if !canAccessUser(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot access this cart",
			},
		})
		return
	}

	var req RemoveCartItemRequest
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

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CART_ITEM_NOT_FOUND",
				"message": "Product is not in the cart",
			},
		})
		return
	}

	result := db.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to remove product from cart",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CART_ITEM_NOT_FOUND",
				"message": "Product is not in the cart",
			},
		})
		return
	}

	updated, err := loadCart(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// DeleteCart handles DELETE /cart/:cartId - empties and removes a cart
func DeleteCart(c *gin.Context) {
	cartID, ok := parseIDParam(c, "cartId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid cart id",
			},
		})
		return
	}

	db := config.GetDB()

	var cart models.Cart
	if err := db.First(&cart, cartID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CART_NOT_FOUND",
				"message": "Cart not found",
			},
		})
		return
	}

	if !canAccessUser(c, cart.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot access this cart",
			},
		})
		return
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete cart",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart deleted successfully",
	})
}
