package repository

import "math"

// Direction is the sort direction of one order clause.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts by one logical property, e.g. "title" or "createdAt".
// Adapters map properties to columns and ignore unknown ones.
type Order struct {
	Property  string
	Direction Direction
}

// PageRequest describes a 0-based page of a sorted result set.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of overflowing, so an absurd page lands past the last row.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is a bounded slice of a larger result set plus total-count metadata.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
	Sort          []Order
}

// NewPage builds a page for req. A nil content slice is normalized to empty.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		Sort:          req.Sort,
	}
}

// EmptyPage returns a page with no content and a zero total.
func EmptyPage[T any](req PageRequest) Page[T] {
	return NewPage[T](nil, req, 0)
}

// TotalPages returns the number of pages of Size needed to hold TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalElements <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// HasNext reports whether a page exists after this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages()-1 }

// HasPrevious reports whether a page exists before this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 0 }

// IsEmpty reports whether the page has no content.
func (p Page[T]) IsEmpty() bool { return len(p.Content) == 0 }

// MapPage converts the content of p with fn and keeps the paging metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		Sort:          p.Sort,
	}
}
