package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage bounds the page number so offsets stay far from int overflow.
	MaxPage         = 100_000
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

type page struct {
	Number int
	Offset int
	Limit  int
}

func pageFromQuery(c echo.Context) page {
	n := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), DefaultPageSize)
	if n < 1 {
		n = 1
	}
	if n > MaxPage {
		n = MaxPage
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page{Number: n, Offset: (n - 1) * size, Limit: size}
}

func (p page) meta(total int64) map[string]any {
	return map[string]any{
		"page":        p.Number,
		"size":        p.Limit,
		"total":       total,
		"total_pages": (total + int64(p.Limit) - 1) / int64(p.Limit),
		"has_prev":    p.Number > 1,
		"has_next":    int64(p.Offset+p.Limit) < total,
	}
}
