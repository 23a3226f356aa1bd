package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "DESC"},
		{"ASC", "ASC"},
		{"asc", "ASC"},
		{"desc", "DESC"},
		{"INVALID", "DESC"},
		{"ASC; DROP TABLE orders;--", "DESC"},
		{"  asc  ", "ASC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateSortOrder(tt.input), "input %q", tt.input)
	}
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "created_at", ValidateSortField("", OrderSortFields, "created_at"))
	assert.Equal(t, "order_number", ValidateSortField("order_number", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("hold_reason", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("created_at; --", OrderSortFields, "created_at"))
}
