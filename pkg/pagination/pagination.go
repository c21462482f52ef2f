package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 24
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Offset int
}

// Page describes the window that was actually returned.
type Page struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Total      int  `json:"total"`
	NextOffset *int `json:"next_offset,omitempty"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Normalize clamps limit and offset to usable values.
func (p Params) Normalize() Params {
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: NormalizeLimit(p.Limit), Offset: offset}
}

// Slice returns the requested window of items along with its page metadata.
// The input order is preserved.
func Slice[T any](items []T, params Params) ([]T, Page) {
	params = params.Normalize()
	total := len(items)
	page := Page{Limit: params.Limit, Offset: params.Offset, Total: total}

	if params.Offset >= total {
		return []T{}, page
	}
	end := params.Offset + params.Limit
	if end > total {
		end = total
	}
	if end < total {
		next := end
		page.NextOffset = &next
	}
	return items[params.Offset:end], page
}
