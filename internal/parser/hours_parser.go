package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/balkashynov/weeklog/internal/models"
)

// ParseHours parses a booked duration in hours
// Accepted: positive decimals in quarter hour steps, e.g. "1", "0.25", "7.75", "1,5"
func ParseHours(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, fmt.Errorf("hours are required")
	}

	// Accept a decimal comma as typed on European keyboards
	input = strings.Replace(input, ",", ".", 1)

	hours, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("hours must be a number")
	}
	if !hours.IsPositive() {
		return decimal.Zero, fmt.Errorf("hours must be greater than zero")
	}
	if !hours.Mod(models.HoursStep).IsZero() {
		return decimal.Zero, fmt.Errorf("hours must be a multiple of %s", models.HoursStep)
	}

	return hours, nil
}

// ParseHoursFloat is ParseHours for callers that store float hours
func ParseHoursFloat(input string) (float64, error) {
	hours, err := ParseHours(input)
	if err != nil {
		return 0, err
	}
	return hours.InexactFloat64(), nil
}

// FormatHours renders hours without trailing zeros
func FormatHours(hours float64) string {
	return decimal.NewFromFloat(hours).String()
}
