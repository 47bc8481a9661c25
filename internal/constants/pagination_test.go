package constants

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "?page=3&limit=20", 3, 20, 40},
		{"zero page clamps", "?page=0&limit=10", 1, 10, 0},
		{"negative values clamp", "?page=-2&limit=-5", 1, 1, 0},
		{"limit capped", "?page=2&limit=500", 2, 100, 100},
		{"garbage falls back", "?page=abc&limit=xyz", 1, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tc.query, nil)

			p := ParsePaginationParams(c)
			if p.Page != tc.wantPage || p.Limit != tc.wantLimit || p.Offset != tc.wantOffset {
				t.Errorf("got page=%d limit=%d offset=%d, want page=%d limit=%d offset=%d",
					p.Page, p.Limit, p.Offset, tc.wantPage, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
