// Package pagination holds the offset window math shared by repositories
// and their callers. Pages are 1-indexed.
package pagination

// Offset converts a 1-indexed page into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// WindowSize returns how many rows a query for the given page can return,
// given the pre-pagination total: min(limit, max(0, total-(page-1)*limit)).
func WindowSize(total, page, limit int) int {
	remaining := total - Offset(page, limit)
	if remaining <= 0 {
		return 0
	}
	if remaining < limit {
		return remaining
	}
	return limit
}

// Meta describes one returned page. Total counts the full filtered set
// before pagination; Current counts the rows actually returned.
type Meta struct {
	Total   int `json:"total"`
	Current int `json:"current"`
	Limit   int `json:"limit"`
	Page    int `json:"page"`
}

// NewMeta builds pagination metadata from a returned slice length.
func NewMeta(total, current, limit, page int) Meta {
	return Meta{Total: total, Current: current, Limit: limit, Page: page}
}
