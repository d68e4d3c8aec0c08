package util

import (
	"testing"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestRatioLerpRoundTrip(t *testing.T) {
	tests := []struct {
		value, min, max float64
		want            float64
	}{
		{20, 20, 20000, 0},
		{20000, 20, 20000, 1},
		{-48, -48, 0, 0},
		{-24, -48, 0, 0.5},
		{0, -48, 0, 1},
		{5, 10, 10, 0}, // degenerate range
	}
	for _, tt := range tests {
		got := Ratio(tt.value, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("Ratio(%g, %g, %g) = %g, want %g", tt.value, tt.min, tt.max, got, tt.want)
		}
	}

	// Lerp inverts Ratio on a sane range.
	for _, v := range []float64{-48, -30.5, -16, 0} {
		r := Ratio(v, -48, 0)
		back := Lerp(r, -48, 0)
		if RoundTo(back, 6) != RoundTo(v, 6) {
			t.Errorf("Lerp(Ratio(%g)) = %g", v, back)
		}
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      float64
	}{
		{1.23456, 2, 1.23},
		{1.235, 2, 1.24},
		{-16.05, 1, -16.1},
		{3.0, 0, 3.0},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.v, tt.precision); got != tt.want {
			t.Errorf("RoundTo(%g, %d) = %g, want %g", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestPercentify(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "0%"},
		{50, "50%"},
		{100, "100%"},
		{150, "100%"},
		{-10, "0%"},
	}
	for _, tt := range tests {
		if got := Percentify(tt.percent); got != tt.want {
			t.Errorf("Percentify(%g) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestTimeify(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{90, "00:01:30"},
		{3661, "01:01:01"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := Timeify(tt.seconds); got != tt.want {
			t.Errorf("Timeify(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
