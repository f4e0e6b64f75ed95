package utils

import (
	"strconv"
	"strings"
)

// MoneyParser converts currency-formatted strings from the sale site
// ("$1,234.56") into numeric values.
type MoneyParser struct {
	logger *Logger
}

// NewMoneyParser creates a MoneyParser with the given logger.
func NewMoneyParser(logger *Logger) *MoneyParser {
	return &MoneyParser{logger: logger}
}

// Parse converts a monetary string to a float. The second return value is
// false when the input is empty or unparseable; parse failures are logged and
// never propagate as errors.
//
// Examples:
//
//	"$1,234.56" → 1234.56, true
//	""          → 0, false
//	"abc"       → 0, false
func (p *MoneyParser) Parse(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}

	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		p.logger.Debug("[money] Failed to parse monetary value %q: %v", raw, err)
		return 0, false
	}
	return val, true
}
