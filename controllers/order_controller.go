package controllers

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"party-planner-api/config"
	"party-planner-api/middleware"
	"party-planner-api/models"
	"party-planner-api/services"
	"party-planner-api/utils"
)

// CreateOrderRequest represents the request body for placing an order.
// Amount is the total the client displayed, verified against the
// server-side recomputation when present.
type CreateOrderRequest struct {
	Address string   `json:"address" binding:"required"`
	Amount  *float64 `json:"amount"`
}

// UpdateOrderStatusRequest carries the target status for an order
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /order/add - snapshots the caller's cart into
// an order and clears the cart in the same transaction
func CreateOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			},
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Address is required",
			},
		})
		return
	}

	db := config.GetDB()

	var cart models.Cart
	err = db.Preload("Items").Preload("Items.Product").Preload("Items.Location").
		Where("user_id = ?", userID).First(&cart).Error
	if err != nil || len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CART",
				"message": "Cart is empty",
			},
		})
		return
	}

	var amount float64
	lines := make([]models.OrderLine, 0, len(cart.Items))
	providerIDs := make([]uint, 0, len(cart.Items))
	seenProviders := make(map[uint]bool)
	for _, item := range cart.Items {
		line := models.OrderLine{
			ProductID:     item.ProductID,
			ProductName:   item.Product.Name,
			PricePerDay:   item.Product.Price,
			SelectedDates: item.SelectedDates,
			LocationID:    item.LocationID,
			LocationName:  item.Location.Name,
			ProviderID:    item.Product.ProviderID,
		}
		amount += line.LineTotal()
		lines = append(lines, line)
		if !seenProviders[line.ProviderID] {
			seenProviders[line.ProviderID] = true
			providerIDs = append(providerIDs, line.ProviderID)
		}
	}

	if req.Amount != nil && math.Abs(amount-*req.Amount) > 0.01 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AMOUNT_MISMATCH",
				"message": "Order amount does not match the cart total",
			},
		})
		return
	}

	order := models.Order{
		UserID:      userID,
		Lines:       lines,
		ProviderIDs: providerIDs,
		Amount:      amount,
		Address:     strings.TrimSpace(req.Address),
		Status:      models.OrderStatusPending,
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Email is optional infrastructure; orders go through without it
	if sender := services.GetEmailService(); sender != nil {
		var user models.User
		if err := db.First(&user, userID).Error; err == nil {
			if err := sender.SendOrderConfirmation(user.Email, user.Name, &order); err != nil {
				log.Printf("Failed to send order confirmation for order %d: %v", order.ID, err)
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetUserOrders handles GET /order/:userId - a user's order history,
// newest first
func GetUserOrders(c *gin.Context) {
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
				"message": "You cannot access these orders",
			},
		})
		return
	}

	db := config.GetDB()

	var orders []models.Order
	err := db.Preload("Lines").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListOrders handles GET /order - admin order listing with status filter
// and address search
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	page, limit := utils.ParsePageParams(c, 10)

	query := db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(address) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	pagination := utils.NewPagination(totalCount, page, limit)

	var orders []models.Order
	if err := query.Preload("Lines").Preload("User").Order("created_at DESC").
		Limit(limit).Offset(pagination.Offset()).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders,
		"pagination": pagination,
	})
}

// UpdateOrderStatus handles PUT /order/update/:orderId - moves an order
// out of PENDING. Admins may complete or cancel; the owner may only
// cancel. Settled orders never change again.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid order id",
			},
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
			},
		})
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != models.OrderStatusCancelled && status != models.OrderStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS_TRANSITION",
				"message": "Status must be COMPLETED or CANCELLED",
			},
		})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if !canAccessUser(c, order.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot update this order",
			},
		})
		return
	}
	if status == models.OrderStatusCompleted && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can complete orders",
			},
		})
		return
	}

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS_TRANSITION",
				"message": "Order is already " + order.Status,
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if sender := services.GetEmailService(); sender != nil {
		var user models.User
		if err := db.First(&user, order.UserID).Error; err == nil {
			if err := sender.SendOrderStatusUpdate(user.Email, user.Name, &order); err != nil {
				log.Printf("Failed to send status update for order %d: %v", order.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
