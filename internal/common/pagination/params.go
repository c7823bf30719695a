package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"project-board/internal/repository"
)

// ParseQueryParams parses pagination parameters from the request query string.
//
// Query parameters:
//   - page: 0-based page number (non-negative integer)
//   - size: items per page (between 1 and config.MaxSize)
//   - sort: "field" or "field,asc|desc"; may repeat. Unknown fields are dropped.
//
// Missing parameters take defaults from config. Malformed page or size values
// return an error, as does a page whose row offset would overflow an int.
func ParseQueryParams(r *http.Request, config Config) (repository.PageRequest, error) {
	config = config.normalized()
	q := r.URL.Query()
	req := repository.PageRequest{Page: 0, Size: config.DefaultSize}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return req, fmt.Errorf("invalid query parameter: page must be a non-negative integer")
		}
		req.Page = page
	}

	if sizeStr := strings.TrimSpace(q.Get("size")); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > config.MaxSize {
			return req, fmt.Errorf("invalid query parameter: size must be between 1 and %d", config.MaxSize)
		}
		req.Size = size
	}

	if req.Page > math.MaxInt/req.Size {
		return req, fmt.Errorf("invalid query parameter: page is too large")
	}

	req.Sort = ParseSort(q["sort"], config)
	return req, nil
}

// ParseSort converts sort parameters into orders, keeping only sortable
// fields. The configured default applies when nothing usable remains.
func ParseSort(values []string, config Config) []repository.Order {
	config = config.normalized()
	var orders []repository.Order
	for _, v := range values {
		field, dir, _ := strings.Cut(v, ",")
		field = strings.TrimSpace(field)
		if !config.sortable(field) {
			continue
		}
		direction := repository.Asc
		if strings.EqualFold(strings.TrimSpace(dir), "desc") {
			direction = repository.Desc
		}
		orders = append(orders, repository.Order{Property: field, Direction: direction})
	}
	if len(orders) == 0 {
		return append([]repository.Order(nil), config.DefaultSort...)
	}
	return orders
}

// SortQuery renders orders back into "field,dir" query values.
func SortQuery(orders []repository.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Property+","+strings.ToLower(string(o.Direction)))
	}
	return out
}
