package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		want      string
	}{
		{name: "integer", raw: "500", wantValid: true, want: "500"},
		{name: "decimal point", raw: "12.5", wantValid: true, want: "12.5"},
		{name: "decimal comma", raw: "12,5", wantValid: true, want: "12.5"},
		{name: "surrounding whitespace", raw: "  42 ", wantValid: true, want: "42"},
		{name: "negative", raw: "-3", wantValid: true, want: "-3"},
		{name: "empty", raw: "", wantValid: false, want: "0"},
		{name: "whitespace only", raw: "   ", wantValid: false, want: "0"},
		{name: "letters", raw: "abc", wantValid: false, want: "0"},
		{name: "trailing garbage", raw: "12abc", wantValid: false, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseNumber(tt.raw)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.True(t, result.OrZero().Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, result.OrZero())
		})
	}
}

func TestNumberResult_OrZero_Invalid(t *testing.T) {
	result := NumberResult{Value: decimal.NewFromInt(7), Valid: false}
	assert.True(t, result.OrZero().IsZero())
}
