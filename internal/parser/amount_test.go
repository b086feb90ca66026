package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"1.234,56", "1234.56", true},
		{"1.234,56-", "-1234.56", true},
		{"-1.234,56", "-1234.56", true},
		{"12,5", "12.5", true},
		{"12.500", "12500", true},
		{"12.50", "12.5", true},
		{"1.234.567,89", "1234567.89", true},
		{"1,234,567", "1234567", true},
		{"0,99", "0.99", true},
		{"500", "500", true},
		{"$ 1.000,00", "1000", true},
		{"  45,00- ", "-45", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"-", "", false},
		{",", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseAmountKeepsSign(t *testing.T) {
	got, ok := ParseAmount("50,00-")
	if !ok {
		t.Fatal("expected a value")
	}
	if !got.IsNegative() {
		t.Errorf("got %s, want a negative amount", got)
	}
}
