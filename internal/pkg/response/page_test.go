package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int
		totalPages int
		hasNext    bool
	}{
		{"empty", 1, 20, 0, 0, false},
		{"single partial page", 1, 20, 5, 1, false},
		{"first of three", 1, 10, 21, 3, true},
		{"last page", 3, 10, 21, 3, false},
		{"zero page size", 1, 0, 7, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPageResponse[string](nil, tt.page, tt.pageSize, tt.total)
			assert.NotNil(t, resp.Items)
			assert.Equal(t, tt.totalPages, resp.TotalPages)
			assert.Equal(t, tt.hasNext, resp.HasNext)
		})
	}
}
