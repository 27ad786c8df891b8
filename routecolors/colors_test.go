package routecolors

import "testing"

func TestChoosePriority(t *testing.T) {
	tests := []struct {
		name   string
		routes []string
		want   RGB
	}{
		{
			name:   "letter beats digit",
			routes: []string{"7", "F"},
			want:   RGB{255, 99, 25}, // F (orange)
		},
		{
			name:   "fixed letter order, not insertion order",
			routes: []string{"Q", "F"},
			want:   RGB{255, 99, 25}, // F before Q in the priority table
		},
		{
			name:   "digit beats shuttle",
			routes: []string{"S", "4"},
			want:   RGB{0, 147, 60}, // 4 (green)
		},
		{
			name:   "numeric order among digits",
			routes: []string{"7", "2"},
			want:   RGB{238, 53, 46}, // 2 (red)
		},
		{
			name:   "single shuttle",
			routes: []string{"FS"},
			want:   RGB{155, 155, 155},
		},
		{
			name:   "normalization trims and upcases",
			routes: []string{"  f ", "q"},
			want:   RGB{255, 99, 25},
		},
		{
			name:   "duplicates collapse",
			routes: []string{"L", "L", "l"},
			want:   RGB{167, 169, 172},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Choose(tt.routes); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestChooseFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		routes []string
		want   RGB
	}{
		{name: "nil set", routes: nil, want: Neutral},
		{name: "empty strings only", routes: []string{"", "  "}, want: Neutral},
		{name: "unknown codes", routes: []string{"X9", "ZZ"}, want: Neutral},
		{name: "shuttle code among unknowns", routes: []string{"SI", "ZZ"}, want: RGB{0, 57, 166}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Choose(tt.routes); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// Choose must be total: arbitrary garbage never panics and always yields a
// color.
func TestChooseTotal(t *testing.T) {
	inputs := [][]string{
		{"\x00", "\xff\xfe"},
		{"ridiculously-long-route-identifier-that-matches-nothing"},
		{"1", "", "💡", "A"},
		make([]string, 1000),
	}
	for _, in := range inputs {
		_ = Choose(in)
	}
}

func TestChooseDeterministic(t *testing.T) {
	// Map iteration order must not leak into the result.
	for i := 0; i < 50; i++ {
		if got := Choose([]string{"SI", "H"}); got != (RGB{0, 57, 166}) {
			t.Fatalf("iteration %d: expected blue, got %+v", i, got)
		}
	}
}
