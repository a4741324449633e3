package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 3, false}, // Right edge is exclusive
		{2, 5, false}, // Bottom edge is exclusive
		{1, 3, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRectInsetAndCentered(t *testing.T) {
	r := NewRect(0, 0, 20, 10)

	in := r.Inset(1)
	if in != NewRect(1, 1, 18, 8) {
		t.Errorf("Inset(1) = %+v", in)
	}
	if tiny := NewRect(0, 0, 1, 1).Inset(2); tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset should not produce negative sizes, got %+v", tiny)
	}

	c := r.Centered(6, 4)
	if c != NewRect(7, 3, 6, 4) {
		t.Errorf("Centered(6, 4) = %+v", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		val, lo, hi int
		want        int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 12, 0, 10, 10},
		{"degenerate range", 7, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}
