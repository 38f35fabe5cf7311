package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		want  PaginationParams
	}{
		{"defaults", "", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"explicit", "?page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"page below minimum", "?page=0", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"limit above maximum", "?limit=500", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"garbage", "?page=abc&limit=xyz", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/cascades"+tt.query, nil)

			assert.Equal(t, tt.want, GetPaginationParams(c))
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	resp := NewPaginationResponse(NewPaginationParams(2, 10), 21)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, int64(21), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
}
