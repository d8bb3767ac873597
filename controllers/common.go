package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"party-planner-api/middleware"
)

// parseIDParam reads a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// canAccessUser reports whether the caller may act on the given user's
// resources: the owner themselves, or any admin
func canAccessUser(c *gin.Context, targetUserID uint) bool {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return false
	}
	return userID == targetUserID || middleware.IsAdmin(c)
}
