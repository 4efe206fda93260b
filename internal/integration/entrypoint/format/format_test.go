package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		part     decimal.Decimal
		total    decimal.Decimal
		expected string
	}{
		{name: "zero over zero", part: d("0"), total: d("0"), expected: "0.00"},
		{name: "part over zero", part: d("10"), total: d("0"), expected: "0.00"},
		{name: "quarter", part: d("25"), total: d("100"), expected: "25.00"},
		{name: "third", part: d("1"), total: d("3"), expected: "33.33"},
		{name: "whole", part: d("7"), total: d("7"), expected: "100.00"},
		{name: "above a thousand is not grouped", part: d("1234"), total: d("1"), expected: "123400.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.part, tt.total)
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		value    decimal.Decimal
		expected string
	}{
		{name: "english thousands", locale: "en", value: d("1234567.891"), expected: "1,234,567.89"},
		{name: "english small", locale: "en", value: d("12.5"), expected: "12.50"},
		{name: "spanish separators", locale: "es", value: d("1234567.891"), expected: "1.234.567,89"},
		{name: "unknown locale falls back", locale: "not a locale!", value: d("1000"), expected: "1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.locale).Amount(tt.value)
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	if got := Money(d("6000"), "€"); got != "€ 6,000.00" {
		t.Errorf("expected € 6,000.00, got %s", got)
	}
	if got := Money(d("6000"), ""); got != "6,000.00" {
		t.Errorf("expected 6,000.00, got %s", got)
	}
}

func TestInteger(t *testing.T) {
	if got := New("en").Integer(d("1234567.6")); got != "1,234,568" {
		t.Errorf("expected 1,234,568, got %s", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		value    decimal.Decimal
		expected string
	}{
		{name: "english", locale: "en", value: d("1234.567"), expected: "1234.57"},
		{name: "spanish decimal mark", locale: "es", value: d("1234.567"), expected: "1234,57"},
		{name: "zero", locale: "en", value: d("0"), expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.locale).Percent(tt.value)
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
