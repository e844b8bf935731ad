package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func pageFor(query string) page {
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return pageFromQuery(echo.New().NewContext(req, httptest.NewRecorder()))
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		query  string
		number int
		offset int
		limit  int
	}{
		{"", 1, 0, DefaultPageSize},
		{"page=3&size=10", 3, 20, 10},
		{"page=0&size=0", 1, 0, DefaultPageSize},
		{"page=-4&size=500", 1, 0, DefaultPageSize},
		{"page=abc", 1, 0, DefaultPageSize},
		{"page=" + strconv.Itoa(MaxPage+1) + "&size=10", MaxPage, (MaxPage - 1) * 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := pageFor(tt.query)
			assert.Equal(t, tt.number, p.Number)
			assert.Equal(t, tt.offset, p.Offset)
			assert.Equal(t, tt.limit, p.Limit)
		})
	}
}

func TestPageFromQuery_HugePageStaysBounded(t *testing.T) {
	p := pageFor("page=9223372036854775807&size=100")
	assert.Equal(t, MaxPage, p.Number)
	assert.Positive(t, p.Offset)
	assert.Equal(t, (MaxPage-1)*MaxPageSize, p.Offset)

	m := p.meta(50)
	assert.Equal(t, false, m["has_next"])
	assert.Equal(t, true, m["has_prev"])
}
