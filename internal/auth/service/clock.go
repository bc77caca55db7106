package service

import "time"

// Clock returns the current instant. A nil Clock reads the wall clock.
type Clock func() time.Time

// Now returns the current instant in UTC.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// Pagination describes one window of a listing.
type Pagination struct {
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

func newPagination(total, skip, limit int) Pagination {
	return Pagination{
		Total:   total,
		Skip:    skip,
		Limit:   limit,
		HasMore: skip+limit < total,
	}
}

// clampLimit applies def when limit is unset and caps it at max.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, max)
}
