package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSV_PrimaryColors(t *testing.T) {
	red := HSV(0, 255, 255)
	assert.Equal(t, byte(255), red.Red)
	assert.Equal(t, byte(0), red.Blue)

	green := HSV(85, 255, 255)
	assert.Equal(t, byte(255), green.Green)
	assert.Less(t, green.Red, byte(10))

	blue := HSV(170, 255, 255)
	assert.Equal(t, byte(255), blue.Blue)
	assert.Less(t, blue.Green, byte(10))
}

func TestHSV_ZeroSaturationIsGrey(t *testing.T) {
	grey := HSV(123, 0, 99)
	assert.Equal(t, Led{Red: 99, Green: 99, Blue: 99}, grey)
}

func TestHSV_ZeroValueIsBlack(t *testing.T) {
	assert.True(t, HSV(200, 255, 0).IsEmpty())
}

func TestGamma(t *testing.T) {
	assert.Equal(t, Led{}, Gamma(Led{}))
	assert.Equal(t, Led{Red: 255}, Gamma(Led{Red: 255}))

	// gamma curve stays below the identity and is monotonic
	prev := byte(0)
	for i := 0; i < 256; i++ {
		g := Gamma(Led{Red: byte(i)}).Red
		assert.LessOrEqual(t, g, byte(i))
		assert.GreaterOrEqual(t, g, prev)
		prev = g
	}
}

func TestBrightness(t *testing.T) {
	leds := []Led{{Red: 255}, {Green: 200}}
	Brightness(leds, 127)
	assert.Equal(t, byte(127), leds[0].Red)
	assert.Equal(t, byte(100), leds[1].Green)
}
