package utils

import (
	"github.com/thinkartha/smileybox/internal/shared/constants"
)

// Pagination holds normalized paging parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination validates and normalizes pagination parameters.
// Page defaults to DefaultPage if less than 1.
// PageSize defaults to DefaultPageSize if less than 1, and is capped at MaxPageSize.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}

	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// ApplyPagination calculates slice indices for pagination.
// Returns (start, end) indices for slicing: slice[start:end]
func ApplyPagination(total, page, pageSize int) (start, end int) {
	start = (page - 1) * pageSize
	end = start + pageSize

	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return start, end
}

// Paginate returns the page of items p selects.
func Paginate[T any](items []T, p Pagination) []T {
	start, end := ApplyPagination(len(items), p.Page, p.PageSize)
	return items[start:end]
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
