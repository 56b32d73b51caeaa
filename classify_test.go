package cubesync

import (
	"math"
	"testing"
)

func TestClassifyFixedPoints(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    Color
	}{
		{255, 255, 255, White},
		{255, 0, 0, Red},
		{0, 200, 0, Green},
		{0, 0, 255, Blue},
		{255, 165, 0, Orange}, // hue 0.108
		{255, 255, 0, Yellow}, // hue 0.167
		{200, 200, 190, White},
	}

	for _, tt := range tests {
		if got := Classify(tt.r, tt.g, tt.b); got != tt.want {
			h, s, v := HSV(tt.r, tt.g, tt.b)
			t.Errorf("Classify(%d,%d,%d) = %s, want %s (h=%.3f s=%.3f v=%.3f)",
				tt.r, tt.g, tt.b, got, tt.want, h, s, v)
		}
	}
}

func TestClassifyHueGapsFallBackToWhite(t *testing.T) {
	// Cyan (h=0.5) and magenta-ish purple (h~0.8) match no hue band.
	for _, rgb := range [][3]uint8{{0, 255, 255}, {200, 0, 255}} {
		if got := Classify(rgb[0], rgb[1], rgb[2]); got != White {
			t.Errorf("Classify(%v) = %s, want white", rgb, got)
		}
	}
}

func TestHSV(t *testing.T) {
	h, s, v := HSV(255, 165, 0)
	if math.Abs(h-165.0/255/6) > 1e-9 {
		t.Errorf("h = %f", h)
	}
	if s != 1 || v != 1 {
		t.Errorf("s = %f, v = %f", s, v)
	}

	h, s, v = HSV(0, 0, 0)
	if h != 0 || s != 0 || v != 0 {
		t.Errorf("HSV(black) = %f %f %f", h, s, v)
	}

	h, _, _ = HSV(128, 128, 128)
	if h != 0 {
		t.Errorf("achromatic hue = %f, want 0", h)
	}
}
