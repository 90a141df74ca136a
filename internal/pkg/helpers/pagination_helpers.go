package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries
// based on a 1-based page index.
func CalculateOffsetLimit(page, limit int) (offset uint64, effectiveLimit int) {
	if limit <= 0 || limit > MaxPageSize {
		effectiveLimit = DefaultPageSize
	} else {
		effectiveLimit = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * effectiveLimit)
	return offset, effectiveLimit
}

// TotalPages computes the page count for a total and page size.
func TotalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if totalItems <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(limit)))
}

// ParsePaginationParams extracts and validates the page and limit
// query parameters from the request.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return page, limit
}
