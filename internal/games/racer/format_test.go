package racer

import (
	"math"
	"testing"
)

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "-:--.---"},
		{-3, "-:--.---"},
		{math.NaN(), "-:--.---"},
		{12.5, "0:12.500"},
		{83.4567, "1:23.457"},
		{600, "10:00.000"},
		{59.9996, "1:00.000"},
	}
	for _, tt := range tests {
		if got := FormatLapTime(tt.seconds); got != tt.expected {
			t.Errorf("FormatLapTime(%v) = %q, expected %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(50000); got != "$50,000" {
		t.Errorf("FormatMoney(50000) = %q, expected $50,000", got)
	}
	if got := FormatMoney(1000); got != "$1,000" {
		t.Errorf("FormatMoney(1000) = %q, expected $1,000", got)
	}
}

func TestOrdinal(t *testing.T) {
	for pos, expected := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th"} {
		if got := Ordinal(pos); got != expected {
			t.Errorf("Ordinal(%d) = %q, expected %q", pos, got, expected)
		}
	}
}
