package schema

// Page is a paginated list response
type Page[T any] struct {
	Pagination *PageInfo `json:"pagination"`
	Data       []T       `json:"data"`
}

// PageInfo describes which slice of a collection a Page contains.
// NextOffset is nil on the last page.
type PageInfo struct {
	Offset        uint64  `json:"offset"`
	Limit         uint64  `json:"limit"`
	TotalCount    uint64  `json:"total_count"`
	IncludedCount int     `json:"included_count"`
	NextOffset    *uint64 `json:"next_offset"`
}

// NewPage wraps data, the slice of a collection of totalCount entries starting at offset
func NewPage[T any](offset, limit, totalCount uint64, data []T) *Page[T] {
	if data == nil {
		data = []T{}
	}
	info := &PageInfo{
		Offset:        offset,
		Limit:         limit,
		TotalCount:    totalCount,
		IncludedCount: len(data),
	}
	if next := offset + uint64(len(data)); len(data) > 0 && next < totalCount {
		info.NextOffset = &next
	}
	return &Page[T]{
		Pagination: info,
		Data:       data,
	}
}
