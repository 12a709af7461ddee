package led

// Led holds one LED's channel values. White is only transmitted for strip
// types with a dedicated white channel (SK6812 RGBW and friends).
type Led struct {
	Red   byte
	Green byte
	Blue  byte
	White byte
}

// True if all components are zero, false otherwise
func (s Led) IsEmpty() bool {
	return s.Red == 0 && s.Green == 0 && s.Blue == 0 && s.White == 0
}

// Return a Led with per component the max value of the caller and the
// in parameter
func (s Led) Max(in Led) Led {
	if s.Red > in.Red {
		in.Red = s.Red
	}
	if s.Green > in.Green {
		in.Green = s.Green
	}
	if s.Blue > in.Blue {
		in.Blue = s.Blue
	}
	if s.White > in.White {
		in.White = s.White
	}
	return in
}

// Scale multiplies every channel by level/255 (level 255 is identity, 0 is
// all off).
func (s Led) Scale(level byte) Led {
	factor := uint16(level) + 1
	return Led{
		Red:   byte(uint16(s.Red) * factor >> 8),
		Green: byte(uint16(s.Green) * factor >> 8),
		Blue:  byte(uint16(s.Blue) * factor >> 8),
		White: byte(uint16(s.White) * factor >> 8),
	}
}

// Local Variables:
// compile-command: "cd .. && go build"
// End:
