package usecase

import "github.com/vadimbarashkov/ngo-site/internal/entity"

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// paginate slices items for the requested 1-based page. A page past the end yields no items.
func paginate[T any](items []T, page, pageSize int) *entity.Page[T] {
	page = normalizePage(page)
	pageSize = normalizePageSize(pageSize)

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	offset := total
	if page-1 < totalPages {
		offset = (page - 1) * pageSize
	}
	end := offset + pageSize
	if end > total {
		end = total
	}

	return &entity.Page[T]{
		Items:      items[offset:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
