package helpers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/courseportal/internal/app/models"
	"github.com/yigit/courseportal/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// NormalizePageRequest fills in defaults and clamps out-of-range values
func NormalizePageRequest(page models.PageRequest) models.PageRequest {
	if page.Page < 1 {
		page.Page = DefaultPage
	}
	if page.Size <= 0 || page.Size > MaxPageSize {
		page.Size = DefaultPageSize
	}
	if page.SortDir != models.SortDesc {
		page.SortDir = models.SortAsc
	}
	if page.SortField == "" {
		page.SortField = models.CourseSortCreatedAt
	}
	return page
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts page, size and sort from the query string.
// sort takes the form "field" or "field,asc|desc".
func ParsePaginationParams(c *gin.Context) models.PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	field, dir := ParseSortParam(c.Query("sort"))

	return models.PageRequest{
		Page:      page,
		Size:      size,
		SortField: field,
		SortDir:   dir,
	}
}

// ParseSortParam splits "field,dir". Unknown fields fall back to creation time.
func ParseSortParam(raw string) (string, models.SortDirection) {
	field := models.CourseSortCreatedAt
	dir := models.SortAsc

	parts := strings.SplitN(strings.TrimSpace(raw), ",", 2)
	switch parts[0] {
	case models.CourseSortTitle, models.CourseSortPrice, models.CourseSortCreatedAt, models.CourseSortUpdatedAt:
		field = parts[0]
	}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), string(models.SortDesc)) {
		dir = models.SortDesc
	}

	return field, dir
}
