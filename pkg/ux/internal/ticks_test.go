package internal

import "testing"

func TestTicksDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b uint32
		want int32
	}{
		{"simple", 5000, 1000, 4000},
		{"equal", 777, 777, 0},
		{"negative", 100, 200, -100},
		{"wraps forward", 5, 0xFFFFFFFB, 10},
		{"wraps at boundary", 0, 0xFFFFFFFF, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TicksDiff(tt.a, tt.b); got != tt.want {
				t.Errorf("TicksDiff(%#x, %#x) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTicksMSMonotonic(t *testing.T) {
	a := TicksMS()
	b := TicksMS()
	if TicksDiff(b, a) < 0 {
		t.Errorf("ticks went backwards: %d then %d", a, b)
	}
}
