package db

// Shared pagination contract: page >= 1, limit in [1,100], default 20.

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type PageParams struct {
	Page  int
	Limit int
}

// ClampPage normalizes raw query values into the allowed range. A limit below
// 1 clamps to 1; the default of 20 applies only when the query carries no
// limit at all (handled where the query string is read).
func ClampPage(page, limit int) PageParams {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageParams{Page: page, Limit: limit}
}

func (p PageParams) Offset() int { return (p.Page - 1) * p.Limit }

type Paginated[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

func NewPaginated[T any](data []T, total int64, p PageParams) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return Paginated[T]{
		Data:       data,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: total,
		TotalPages: pages,
	}
}
