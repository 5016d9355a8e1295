package domain

import "math"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sort keys accepted by the list endpoints.
const (
	SortByCreatedAt = "createdAt"
	SortByTitle     = "title"
	SortByPriority  = "priority"
	SortByDueDate   = "dueDate"
	SortByPosition  = "position"
	SortByLikes     = "likes"
	SortByComments  = "comments"
)

var (
	TaskSortFields = []string{SortByCreatedAt, SortByTitle, SortByPriority, SortByDueDate, SortByPosition}
	PostSortFields = []string{SortByCreatedAt, SortByLikes, SortByComments}
)

const (
	MaxTaskPageLimit = 100
	MaxFeedPageLimit = 50
	// MaxPage bounds the page number so offsets stay far from overflow.
	MaxPage = 1_000_000
)

var (
	DefaultTaskPage = PageQuery{Page: 1, Limit: 10, SortBy: SortByPosition, SortOrder: SortAsc}
	DefaultFeedPage = PageQuery{Page: 1, Limit: 10, SortBy: SortByCreatedAt, SortOrder: SortDesc}
)

// PageQuery is an offset page request. Page is 1-based.
type PageQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// Offset saturates at math.MaxInt instead of wrapping.
func (q PageQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// WithDefaults fills the zero fields of q from def.
func (q PageQuery) WithDefaults(def PageQuery) PageQuery {
	if q.Page < 1 {
		q.Page = def.Page
	}
	if q.Limit < 1 {
		q.Limit = def.Limit
	}
	if q.SortBy == "" {
		q.SortBy = def.SortBy
	}
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		q.SortOrder = def.SortOrder
	}
	return q
}

// CapLimit lowers Limit to max when it exceeds it.
func (q PageQuery) CapLimit(max int) PageQuery {
	if q.Limit > max {
		q.Limit = max
	}
	return q
}
