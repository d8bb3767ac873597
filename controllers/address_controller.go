package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"party-planner-api/config"
	"party-planner-api/middleware"
	"party-planner-api/models"
	"party-planner-api/utils"
)

// AddAddressRequest represents the request body for creating an address
type AddAddressRequest struct {
	Venue    string `json:"venue" binding:"required"`
	Place    string `json:"place" binding:"required"`
	Landmark string `json:"landmark"`
	City     string `json:"city" binding:"required"`
	District string `json:"district" binding:"required"`
	State    string `json:"state" binding:"required"`
	Pincode  string `json:"pincode" binding:"required,len=6"`
	Phone    string `json:"phone" binding:"required,len=10"`
}

// UpdateAddressRequest carries a partial address update
type UpdateAddressRequest struct {
	ID       uint    `json:"id" binding:"required"`
	Venue    *string `json:"venue"`
	Place    *string `json:"place"`
	Landmark *string `json:"landmark"`
	City     *string `json:"city"`
	District *string `json:"district"`
	State    *string `json:"state"`
	Pincode  *string `json:"pincode"`
	Phone    *string `json:"phone"`
}

// ListAddresses handles GET /address/:userId - a user's saved addresses
func ListAddresses(c *gin.Context) {
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
				"message": "You cannot access these addresses",
			},
		})
		return
	}

	db := config.GetDB()

	var addresses []models.Address
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").Find(&addresses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch addresses",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    addresses,
	})
}

// AddAddress handles POST /address/add - saves an address for the caller
func AddAddress(c *gin.Context) {
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

	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Address fields are missing or invalid",
				"details": err.Error(),
			},
		})
		return
	}

	// The numeric binding tag admits signs and decimals, so digits are
	// checked by hand
	if !utils.IsDigits(req.Pincode) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Pincode must be 6 digits",
			},
		})
		return
	}
	if !utils.IsDigits(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Phone must be 10 digits",
			},
		})
		return
	}

	address := models.Address{
		UserID:   userID,
		Venue:    strings.TrimSpace(req.Venue),
		Place:    strings.TrimSpace(req.Place),
		Landmark: strings.TrimSpace(req.Landmark),
		City:     strings.TrimSpace(req.City),
		District: strings.TrimSpace(req.District),
		State:    strings.TrimSpace(req.State),
		Pincode:  req.Pincode,
		Phone:    req.Phone,
	}

	if err := config.GetDB().Create(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save address",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    address,
	})
}

// UpdateAddress handles PUT /address/update - partial address update
func UpdateAddress(c *gin.Context) {
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Address id is required",
			},
		})
		return
	}

	db := config.GetDB()

	var address models.Address
	if err := db.First(&address, req.ID).Error; err != nil || address.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADDRESS_NOT_FOUND",
				"message": "Address not found",
			},
		})
		return
	}

	if !canAccessUser(c, address.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot update this address",
			},
		})
		return
	}

	updates := map[string]interface{}{}

	if req.Venue != nil {
		updates["venue"] = strings.TrimSpace(*req.Venue)
	}
	if req.Place != nil {
		updates["place"] = strings.TrimSpace(*req.Place)
	}
	if req.Landmark != nil {
		updates["landmark"] = strings.TrimSpace(*req.Landmark)
	}
	if req.City != nil {
		updates["city"] = strings.TrimSpace(*req.City)
	}
	if req.District != nil {
		updates["district"] = strings.TrimSpace(*req.District)
	}
	if req.State != nil {
		updates["state"] = strings.TrimSpace(*req.State)
	}
	if req.Pincode != nil {
		if len(*req.Pincode) != 6 || !utils.IsDigits(*req.Pincode) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Pincode must be 6 digits",
				},
			})
			return
		}
		updates["pincode"] = *req.Pincode
	}
	if req.Phone != nil {
		if len(*req.Phone) != 10 || !utils.IsDigits(*req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Phone must be 10 digits",
				},
			})
			return
		}
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := db.Model(&address).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update address",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    address,
	})
}

// DeleteAddress handles DELETE /address/:addressId - soft-deletes an
// address and returns no body
func DeleteAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "addressId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid address id",
			},
		})
		return
	}

	db := config.GetDB()

	var address models.Address
	if err := db.First(&address, addressID).Error; err != nil || address.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADDRESS_NOT_FOUND",
				"message": "Address not found",
			},
		})
		return
	}

	if !canAccessUser(c, address.UserID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You cannot delete this address",
			},
		})
		return
	}

	if err := db.Model(&address).Update("is_deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete address",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
