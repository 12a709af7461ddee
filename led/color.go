package led

import "math"

var gamma8 [256]byte

func init() {
	// Standard gamma 2.8 correction table as used by the usual smart-LED
	// libraries.
	for i := range gamma8 {
		gamma8[i] = byte(math.Round(math.Pow(float64(i)/255.0, 2.8) * 255.0))
	}
}

// Gamma applies gamma correction to all channels of a single Led.
func Gamma(l Led) Led {
	return Led{
		Red:   gamma8[l.Red],
		Green: gamma8[l.Green],
		Blue:  gamma8[l.Blue],
		White: gamma8[l.White],
	}
}

// GammaAll gamma-corrects a whole frame in place and returns it.
func GammaAll(leds []Led) []Led {
	for i := range leds {
		leds[i] = Gamma(leds[i])
	}
	return leds
}

// Brightness scales a whole frame in place to the given level (255 is full
// brightness) and returns it.
func Brightness(leds []Led, level byte) []Led {
	for i := range leds {
		leds[i] = leds[i].Scale(level)
	}
	return leds
}

// HSV converts a hue/saturation/value triple (all 0..255, hue covering the
// full color wheel) into an RGB Led. The white channel stays zero.
func HSV(hue, sat, val byte) Led {
	if sat == 0 {
		return Led{Red: val, Green: val, Blue: val}
	}

	region := hue / 43
	remainder := (hue - region*43) * 6

	v := uint16(val)
	p := byte(v * (255 - uint16(sat)) / 255)
	q := byte(v * (255 - uint16(sat)*uint16(remainder)/255) / 255)
	t := byte(v * (255 - uint16(sat)*(255-uint16(remainder))/255) / 255)

	switch region {
	case 0:
		return Led{Red: val, Green: t, Blue: p}
	case 1:
		return Led{Red: q, Green: val, Blue: p}
	case 2:
		return Led{Red: p, Green: val, Blue: t}
	case 3:
		return Led{Red: p, Green: q, Blue: val}
	case 4:
		return Led{Red: t, Green: p, Blue: val}
	default:
		return Led{Red: val, Green: p, Blue: q}
	}
}
