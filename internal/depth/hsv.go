package depth

import "math"

// HSVToRGB converts a hue in degrees plus saturation and value in [0, 1] to
// 8-bit RGB.
//
// Hue may be any finite value; it is wrapped into [0, 360). Channels are
// scaled by 255 and truncated toward zero.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}

	var rf, gf, bf float64
	switch {
	case v <= 0:
		rf, gf, bf = 0, 0, 0
	case s <= 0:
		rf, gf, bf = v, v, v
	default:
		hf := h / 60
		i := int(math.Floor(hf))
		f := hf - float64(i)
		pv := v * (1 - s)
		qv := v * (1 - s*f)
		tv := v * (1 - s*(1-f))

		switch i {
		case 0, 6: // red dominant; 6 only if wrapping overshoots
			rf, gf, bf = v, tv, pv
		case 1:
			rf, gf, bf = qv, v, pv
		case 2:
			rf, gf, bf = pv, v, tv
		case 3:
			rf, gf, bf = pv, qv, v
		case 4:
			rf, gf, bf = tv, pv, v
		case 5, -1:
			rf, gf, bf = v, pv, qv
		default:
			// Unreachable after wrapping; render neutral at full value.
			rf, gf, bf = v, v, v
		}
	}

	return channel(rf), channel(gf), channel(bf)
}

func channel(c float64) uint8 {
	n := int(c * 255)
	if n > 255 {
		n = 255
	}
	return uint8(n)
}
