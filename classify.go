package cubesync

// HSV converts an RGB sample to hue, saturation and value, each in [0,1].
// Hue is 0 for achromatic samples.
func HSV(r, g, b uint8) (h, s, v float64) {
	rn := float64(r) / 255
	gn := float64(g) / 255
	bn := float64(b) / 255

	hi := max(rn, gn, bn)
	lo := min(rn, gn, bn)

	v = hi
	d := hi - lo
	if hi != 0 {
		s = d / hi
	}
	if hi == lo {
		return 0, s, v
	}

	switch hi {
	case rn:
		h = (gn - bn) / d
		if gn < bn {
			h += 6
		}
	case gn:
		h = (bn-rn)/d + 2
	default:
		h = (rn-gn)/d + 4
	}
	return h / 6, s, v
}

// Classify maps a camera sample to the nearest sticker color. It never
// fails: samples that match no rule, including the hue gaps 0.45-0.55 and
// 0.75-0.95, come back as White.
func Classify(r, g, b uint8) Color {
	h, s, v := HSV(r, g, b)

	switch {
	case s < 0.25 && v > 0.5:
		return White
	case h > 0.95 || h < 0.04:
		return Red
	case h < 0.12:
		return Orange
	case h < 0.25:
		return Yellow
	case h < 0.45:
		return Green
	case h >= 0.55 && h < 0.75:
		return Blue
	case v < 0.2:
		// Shadow or black plastic.
		return White
	default:
		return White
	}
}
