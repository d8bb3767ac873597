package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is the envelope attached to every paginated listing
type Pagination struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// ParsePageParams reads page and limit query parameters, clamping them to
// sane values. Limit is capped at 100 to keep responses bounded.
func ParsePageParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

// NewPagination builds the pagination envelope for a listing.
// totalPages = ceil(totalCount / limit).
func NewPagination(totalCount int64, page, limit int) Pagination {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return Pagination{
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}

// Offset returns the row offset for the page
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.Limit
}
