package utils

import "testing"

func TestMoneyParserParse(t *testing.T) {
	p := NewMoneyParser(NewLogger())

	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"$1,234.56", 1234.56, true},
		{"$250000", 250000, true},
		{"1234.56", 1234.56, true},
		{"$99.50 ", 99.50, true},
		{"  $1,000,000.00", 1000000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"$", 0, false},
	}

	for _, tt := range tests {
		got, ok := p.Parse(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("Parse(%q) ok = %v; want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}
