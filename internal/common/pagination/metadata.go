package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Total      int64    `json:"total"`      // Total number of items across all pages
	Page       int      `json:"page"`       // Current page number (0-based)
	Size       int      `json:"size"`       // Items per page
	TotalPages int      `json:"totalPages"` // Calculated total number of pages
	Sort       []string `json:"sort"`       // Applied orders as "field,dir"
}
