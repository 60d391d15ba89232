package services

// PageMeta describes one page of a list response.
type PageMeta struct {
	TotalItems      int  `json:"totalItems"`
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	Limit           int  `json:"limit"`
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NormalizePage clamps page and limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// NewPageMeta builds the pagination envelope. An empty result set still
// counts as one page.
func NewPageMeta(totalItems, page, limit int) PageMeta {
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return PageMeta{
		TotalItems:      totalItems,
		CurrentPage:     page,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
		Limit:           limit,
	}
}
