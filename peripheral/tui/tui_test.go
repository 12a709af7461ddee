package tui

import (
	"strings"
	"testing"

	"lautenbacher.net/smartled/led"
)

func TestScaledColor(t *testing.T) {
	if got := scaledColor(led.Led{Red: 255}); got != "[#ff0000]" {
		t.Errorf("Expected [#ff0000], got %s", got)
	}
	if got := scaledColor(led.Led{Red: 16, Green: 32, Blue: 48}); got != "[#102030]" {
		t.Errorf("Expected [#102030], got %s", got)
	}
	// the white channel brightens all three components and saturates
	if got := scaledColor(led.Led{Red: 200, White: 100}); got != "[#ff6464]" {
		t.Errorf("Expected [#ff6464], got %s", got)
	}
}

func TestRenderStripe(t *testing.T) {
	out := renderStripe([]led.Led{{Red: 255}, {Green: 255}})
	if !strings.HasPrefix(out, "[#ff0000]█[#00ff00]█") {
		t.Errorf("Unexpected stripe rendering: %s", out)
	}
	if !strings.HasSuffix(out, "[-]") {
		t.Errorf("Stripe must reset the color tag: %s", out)
	}
}
