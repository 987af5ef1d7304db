package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of the rect", 1, 3, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("%s: Contains(%d, %d) = %v, expected %v", tt.name, tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{50, 10, 90, 50},
		{5, 10, 90, 10},
		{95.5, 10, 90, 90},
	}

	for _, tt := range tests {
		if got := ClampF(tt.val, tt.min, tt.max); got != tt.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tt.val, tt.min, tt.max, got, tt.expected)
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		v        float64
		expected int
	}{
		{0, 0}, {100, 40}, {50, 20}, {10, 4}, {-20, 0}, {150, 40},
	}

	for _, tt := range tests {
		if got := Scale(tt.v, 0, 100, 0, 40); got != tt.expected {
			t.Errorf("Scale(%v) = %d, expected %d", tt.v, got, tt.expected)
		}
	}
	if got := Scale(5, 1, 1, 3, 9); got != 3 {
		t.Errorf("Scale() on an empty range = %d, expected 3", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min returned the larger value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max returned the smaller value")
	}
}
