// Package pagination turns page/size/sort query parameters into repository
// page requests and builds the page-number bar and JSON envelopes around
// the resulting pages.
package pagination

import "project-board/internal/repository"

// Config holds pagination configuration settings.
type Config struct {
	DefaultSize int // Items per page when size is absent (typically 10)
	MaxSize     int // Largest accepted size (typically 100)
	// DefaultSort applies when no usable sort parameter is given.
	DefaultSort []repository.Order
	// SortableFields lists the properties a client may sort by.
	SortableFields []string
	// BarLength is the number of page links in the pagination bar.
	BarLength int
}

// DefaultConfig returns the default pagination configuration:
// size 10, max 100, newest first, a bar of five pages.
func DefaultConfig() Config {
	return Config{
		DefaultSize:    10,
		MaxSize:        100,
		DefaultSort:    []repository.Order{{Property: "createdAt", Direction: repository.Desc}},
		SortableFields: []string{"title", "content", "userId", "nickname", "hashtag", "createdAt", "createdBy"},
		BarLength:      5,
	}
}

// WithSizes returns the default configuration with the given sizes. Values
// that are not positive, or a default above the max, fall back to the defaults.
func WithSizes(defaultSize, maxSize, barLength int) Config {
	cfg := DefaultConfig()
	cfg.DefaultSize = defaultSize
	cfg.MaxSize = maxSize
	cfg.BarLength = barLength
	return cfg.normalized()
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxSize <= 0 {
		c.MaxSize = def.MaxSize
	}
	if c.DefaultSize <= 0 || c.DefaultSize > c.MaxSize {
		c.DefaultSize = min(def.DefaultSize, c.MaxSize)
	}
	if c.BarLength <= 0 {
		c.BarLength = def.BarLength
	}
	if len(c.DefaultSort) == 0 {
		c.DefaultSort = def.DefaultSort
	}
	if len(c.SortableFields) == 0 {
		c.SortableFields = def.SortableFields
	}
	return c
}

func (c Config) sortable(field string) bool {
	for _, f := range c.SortableFields {
		if f == field {
			return true
		}
	}
	return false
}
