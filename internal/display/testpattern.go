package display

import (
	"image"
	"image/color"
	"log"
)

// TestPattern is a display backend with no transport behind it: it reports
// a fixed desktop size and renders a grid pattern as its framebuffer.
// It lets the viewer run end to end without a session connection, and it
// logs forwarded keys instead of delivering them anywhere.
type TestPattern struct {
	*Base
}

// NewTestPattern returns a test-pattern display of the given desktop size.
// The display starts disabled and not ready; call Ready once "connected".
func NewTestPattern(width, height int) *TestPattern {
	return &TestPattern{Base: NewBase(width, height)}
}

// Ready flags the display as having received its first frame.
func (t *TestPattern) Ready() {
	t.SetShowHint(t.ShowHint() | HintReady)
}

// Resize changes the synthetic desktop size, emitting desktop-resize.
func (t *TestPattern) Resize(width, height int) {
	t.SetDesktopSize(width, height)
}

func (t *TestPattern) SendKeys(keysyms []uint32) error {
	log.Printf("test-pattern display: dropping %d forwarded keysyms", len(keysyms))
	return nil
}

// Snapshot renders the pattern: a dark background with a 64px grid and a
// white border, so scaling artifacts are easy to spot.
func (t *TestPattern) Snapshot() (image.Image, error) {
	w, h := t.DesktopSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := color.RGBA{R: 24, G: 24, B: 32, A: 255}
	grid := color.RGBA{R: 64, G: 96, B: 128, A: 255}
	border := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				img.SetRGBA(x, y, border)
			case x%64 == 0 || y%64 == 0:
				img.SetRGBA(x, y, grid)
			default:
				img.SetRGBA(x, y, bg)
			}
		}
	}
	return img, nil
}
