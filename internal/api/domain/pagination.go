package domain

// Pagination bounds. Windows are clamped, never rejected: out-of-range
// values are pulled back into [1, MaxPageSize] instead of erroring.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a clamped pagination window.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest clamps raw query values into a valid window.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Offset returns the row offset of this window.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Pages returns the total page count for the given row total, rounding up.
// Zero rows still report one (empty) page.
func (p PageRequest) Pages(total int64) int {
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	if pages < 1 {
		pages = 1
	}
	return pages
}
