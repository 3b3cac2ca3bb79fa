package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedLimit  int
		expectedOffset int
		expectedOK     bool
	}{
		{
			name:           "both positive",
			query:          "?page=3&per_page=10",
			expectedLimit:  10,
			expectedOffset: 20,
			expectedOK:     true,
		},
		{
			name:       "missing page",
			query:      "?per_page=10",
			expectedOK: false,
		},
		{
			name:       "missing per_page",
			query:      "?page=2",
			expectedOK: false,
		},
		{
			name:       "no parameters",
			query:      "",
			expectedOK: false,
		},
		{
			name:       "non-numeric page",
			query:      "?page=abc&per_page=10",
			expectedOK: false,
		},
		{
			name:       "non-numeric per_page",
			query:      "?page=1&per_page=ten",
			expectedOK: false,
		},
		{
			name:       "zero page",
			query:      "?page=0&per_page=10",
			expectedOK: false,
		},
		{
			name:       "negative per_page",
			query:      "?page=1&per_page=-5",
			expectedOK: false,
		},
		{
			name:           "first page has zero offset",
			query:          "?page=1&per_page=25",
			expectedLimit:  25,
			expectedOffset: 0,
			expectedOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/customers"+tt.query, nil)

			limit, offset, ok := parsePagination(req)

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedLimit, limit)
				assert.Equal(t, tt.expectedOffset, offset)
			}
		})
	}
}
