package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseNumber parses a form entry as a number. A decimal comma is accepted.
func parseNumber(s, fieldName string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%s cannot be empty", fieldName)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("%s must be a valid number", fieldName)
	}
	return val, nil
}

// parseIntInRange parses a string as an integer and validates it's within the given range.
func parseIntInRange(s string, min, max int, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s cannot be empty", fieldName)
	}

	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", fieldName)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d", fieldName, min, max)
	}

	return val, nil
}

// formatNumber renders v the way it is typed: no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sameNumber reports whether the entry text already shows v, so a refresh
// does not rewrite what the user is typing.
func sameNumber(text string, v float64) bool {
	got, err := parseNumber(text, "")
	return err == nil && got == v
}

// countOptions lists the splitting count choices, widened to include current.
func countOptions(current int) []string {
	n := SplittingCountChoices
	if current > n {
		n = current
	}
	opts := make([]string, n)
	for i := range opts {
		opts[i] = strconv.Itoa(i + 1)
	}
	return opts
}
