package pagination

import (
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params holds the parsed page/limit pair of a list request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit from the query string, clamping to sane
// bounds. Missing or malformed values fall back to page 1 / DefaultLimit.
func Parse(c *fiber.Ctx) Params {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the DB offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Envelope builds the canonical paginated envelope from the page params,
// the items for this page, and the total item count reported by the store.
func (p Params) Envelope(message string, items interface{}, total int64) response.PageBody {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return response.PageBody{
		Success:    true,
		Message:    message,
		Data:       items,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		TotalItems: total,
		IsPrevious: p.Page > 1,
		IsNext:     p.Page < totalPages,
	}
}
