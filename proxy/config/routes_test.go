package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.app/proxy/model"
)

func TestParseRoutes(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expected      model.RouteTable
		expectedError string
	}{
		{
			name:  "keeps_declaration_order",
			input: `{"/svc-a": "http://backend-a", "/svc": "http://backend-b", "/a": "http://backend-c"}`,
			expected: model.RouteTable{
				{Prefix: "/svc-a", Backend: "http://backend-a"},
				{Prefix: "/svc", Backend: "http://backend-b"},
				{Prefix: "/a", Backend: "http://backend-c"},
			},
		},
		{
			name:  "order_not_sorted",
			input: `{"/z": "http://z", "/a": "http://a"}`,
			expected: model.RouteTable{
				{Prefix: "/z", Backend: "http://z"},
				{Prefix: "/a", Backend: "http://a"},
			},
		},
		{
			name:     "empty_object",
			input:    `{}`,
			expected: nil,
		},
		{
			name:          "duplicate_prefix",
			input:         `{"/svc": "http://a", "/svc": "http://b"}`,
			expectedError: `duplicate route prefix "/svc"`,
		},
		{
			name:          "array_rejected",
			input:         `[{"prefix": "/svc", "backend": "http://a"}]`,
			expectedError: "routes must be a JSON object",
		},
		{
			name:          "non_string_backend",
			input:         `{"/svc": 8080}`,
			expectedError: `read backend for prefix "/svc"`,
		},
		{
			name:          "truncated_document",
			input:         `{"/svc": "http://a"`,
			expectedError: "read routes",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := ParseRoutes(strings.NewReader(tc.input))

			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, table)
		})
	}
}
