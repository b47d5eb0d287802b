package domain

// Pagination is the descriptor the API returns alongside every list.
// The client only echoes Page and Limit back on the next request.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of entities.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// PageRequest selects a page.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps page to >= 1 and limit to [1, 100], using def when unset.
func (r PageRequest) Normalize(def int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = def
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	return r
}

// Counts are the dashboard totals.
type Counts struct {
	TotalCouriers  int `json:"totalCouriers"`
	TotalRiders    int `json:"totalRiders"`
	TotalCustomers int `json:"totalCustomers"`
}
