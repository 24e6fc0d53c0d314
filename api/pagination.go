package api

import (
	"net/http"
	"strconv"
)

// The storefront renders product grids of a couple dozen items; the limits
// are sized for that, not for bulk export.
const (
	defaultPageLimit = 24
	maxPageLimit     = 96
)

// PaginationMeta is embedded in paginated list responses.
type PaginationMeta struct {
	TotalCount int  `json:"total_count"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
}

// parsePagination reads "limit" and "offset" from the query string. Missing,
// non-numeric, or non-positive values fall back to offset 0 and the default
// page limit; limit is capped at maxPageLimit.
func parsePagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()

	limit = defaultPageLimit
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = min(n, maxPageLimit)
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// paginateSlice returns the [start, end) window into a collection of total
// items plus the filled PaginationMeta. An offset past the end yields an
// empty page.
func paginateSlice(total, limit, offset int) (start, end int, meta PaginationMeta) {
	start = min(offset, total)
	end = min(start+limit, total)
	meta = PaginationMeta{
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    end < total,
	}
	return start, end, meta
}
