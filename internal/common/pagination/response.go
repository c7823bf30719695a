package pagination

import "project-board/internal/repository"

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., dto.ArticleDTO).
type Response[T any] struct {
	Data       []T      `json:"data"`       // Array of data items for the current page
	Pagination Metadata `json:"pagination"` // Pagination metadata (total, page, size, etc.)
}

// NewResponse creates a new paginated response with data and metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}

// FromPage wraps a repository page.
func FromPage[T any](page repository.Page[T]) Response[T] {
	return NewResponse(page.Content, Metadata{
		Total:      page.TotalElements,
		Page:       page.Number,
		Size:       page.Size,
		TotalPages: page.TotalPages(),
		Sort:       SortQuery(page.Sort),
	})
}
