package pagination

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFrom(t *testing.T, query string) Params {
	var got Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = Parse(c)
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("GET", "/?"+query, nil)
	_, err := app.Test(req)
	require.NoError(t, err)
	return got
}

func TestParse_Defaults(t *testing.T) {
	p := parseFrom(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParse_Clamps(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"page=0&limit=0", 1, DefaultLimit},
		{"page=-3&limit=-1", 1, DefaultLimit},
		{"page=2&limit=500", 2, MaxLimit},
		{"page=abc&limit=xyz", 1, DefaultLimit},
		{"page=3&limit=25", 3, 25},
	}
	for _, tc := range cases {
		p := parseFrom(t, tc.query)
		assert.Equal(t, tc.wantPage, p.Page, tc.query)
		assert.Equal(t, tc.wantLimit, p.Limit, tc.query)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestEnvelope_PageFlags(t *testing.T) {
	cases := []struct {
		page, limit    int
		total          int64
		wantPages      int
		wantPrev, next bool
	}{
		{1, 10, 0, 0, false, false},
		{1, 10, 5, 1, false, false},
		{1, 10, 25, 3, false, true},
		{2, 10, 25, 3, true, true},
		{3, 10, 25, 3, true, false},
	}
	for _, tc := range cases {
		name := fmt.Sprintf("page=%d total=%d", tc.page, tc.total)
		body := Params{Page: tc.page, Limit: tc.limit}.Envelope("ok", nil, tc.total)
		assert.True(t, body.Success, name)
		assert.Equal(t, tc.wantPages, body.TotalPages, name)
		assert.Equal(t, tc.total, body.TotalItems, name)
		assert.Equal(t, tc.wantPrev, body.IsPrevious, name)
		assert.Equal(t, tc.next, body.IsNext, name)
	}
}
