package pagination

import (
	"gorm.io/gorm"
)

const (
	// DefaultPerPage is the standard page size when per_page is not provided.
	DefaultPerPage = 20
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize enforces a 1-based page and the configured size bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Page is the list payload returned by every paginated endpoint.
type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPage assembles a page payload; a nil slice is emitted as an empty array.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	n := params.Normalize()
	if items == nil {
		items = []T{}
	}
	lastPage := 1
	if total > 0 {
		lastPage = int((total + int64(n.PerPage) - 1) / int64(n.PerPage))
	}
	return Page[T]{
		Data:        items,
		CurrentPage: n.Page,
		PerPage:     n.PerPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

// Find counts the filtered query, then loads the requested page into a slice.
// The query must carry its model and filters; fetch scopes (preloads, ordering)
// apply to the page load only so they never touch the count.
func Find[T any](query *gorm.DB, params Params, fetch ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	n := params.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	items := []T{}
	if err := query.Session(&gorm.Session{}).
		Scopes(fetch...).
		Offset(n.Offset()).
		Limit(n.PerPage).
		Find(&items).Error; err != nil {
		return Page[T]{}, err
	}
	return NewPage(items, n, total), nil
}
