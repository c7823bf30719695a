package pagination

import (
	"fmt"
	"math"

	"project-board/internal/repository"
)

// Validate checks a page request against the configuration.
// Returns an error if:
//   - page is negative
//   - size is less than 1 or greater than config.MaxSize
//   - page * size does not fit in an int
func Validate(req repository.PageRequest, config Config) error {
	config = config.normalized()
	if req.Page < 0 {
		return fmt.Errorf("page must be a non-negative integer")
	}
	if req.Size < 1 || req.Size > config.MaxSize {
		return fmt.Errorf("size must be between 1 and %d", config.MaxSize)
	}
	if req.Page > math.MaxInt/req.Size {
		return fmt.Errorf("page is too large")
	}
	return nil
}

// WithDefaults repairs a page request instead of rejecting it.
//
// Rules:
//   - If page < 0, set to 0
//   - If size <= 0, set to config.DefaultSize
//   - If size > config.MaxSize, cap to config.MaxSize
//   - If sort is empty, use config.DefaultSort
func WithDefaults(req repository.PageRequest, config Config) repository.PageRequest {
	config = config.normalized()
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size <= 0 {
		req.Size = config.DefaultSize
	}
	if req.Size > config.MaxSize {
		req.Size = config.MaxSize
	}
	if len(req.Sort) == 0 {
		req.Sort = append([]repository.Order(nil), config.DefaultSort...)
	}
	return req
}
