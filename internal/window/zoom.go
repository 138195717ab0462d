package window

import (
	"log"
	"math"
)

// Zoom levels are percentages of the 1:1 guest-pixel-to-screen-pixel
// mapping, stepped by ZoomStep.
const (
	ZoomStep   = 10
	MinZoom    = 10
	NormalZoom = 100
	MaxZoom    = 400

	// Minimum usable display area; the window never shrinks below this
	// regardless of the requested zoom.
	MinDisplayWidth  = 320
	MinDisplayHeight = 200
)

// SetZoomLevel sets the zoom level, clamped to [MinZoom, MaxZoom] and
// raised to the minimum zoom floor for the current desktop size. When no
// display is attached the clamped value is only stored for a future
// attachment. No resize is issued when the display and the observed
// window layout already reflect the target zoom.
func (c *Controller) SetZoomLevel(zoom int) {
	if zoom < MinZoom {
		zoom = MinZoom
	}
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	c.st.zoomLevel = zoom

	if c.display == nil {
		return
	}

	if min := c.minimalZoomLevel(); min > c.st.zoomLevel {
		log.Printf("cannot set zoom level %d, using %d", c.st.zoomLevel, min)
		c.st.zoomLevel = min
	}

	if c.st.zoomLevel == c.display.ZoomLevel() &&
		c.st.zoomLevel == c.realZoomLevel() {
		return
	}

	c.display.SetZoomLevel(c.st.zoomLevel)
	c.queueResize()
}

// ZoomLevel returns the configured zoom level.
func (c *Controller) ZoomLevel() int {
	return c.st.zoomLevel
}

// ZoomIn raises the zoom one step above the currently observed scale.
func (c *Controller) ZoomIn() {
	c.SetZoomLevel(c.realZoomLevel() + ZoomStep)
}

// ZoomOut lowers the zoom one step below the currently observed scale.
func (c *Controller) ZoomOut() {
	c.SetZoomLevel(c.realZoomLevel() - ZoomStep)
}

// ZoomNormal resets the zoom to 1:1.
func (c *Controller) ZoomNormal() {
	c.SetZoomLevel(NormalZoom)
}

// realZoomLevel derives the zoom the toolkit layout has actually achieved
// from the display widget's allocated width versus the desktop width.
func (c *Controller) realZoomLevel() int {
	if c.display == nil {
		return NormalZoom
	}

	allocW, _ := c.tk.DisplayAllocation()
	deskW, _ := c.display.DesktopSize()
	if deskW <= 0 {
		return NormalZoom
	}

	return int(math.Round(float64(NormalZoom) * float64(allocW) / float64(deskW)))
}

// minimalDimensions returns the smallest acceptable window content size:
// the hard display minimum, widened to the top chrome if that is wider.
func (c *Controller) minimalDimensions() (width, height int) {
	width = MinDisplayWidth
	if cw := c.tk.ChromeWidth(); cw > width {
		width = cw
	}
	return width, MinDisplayHeight
}

// minimalZoomLevel computes the zoom floor for the current desktop size,
// guaranteeing the chrome plus minimum content area always fits.
func (c *Controller) minimalZoomLevel() int {
	minW, minH := c.minimalDimensions()
	deskW, deskH := c.display.DesktopSize()
	return zoomFloor(minW, minH, deskW, deskH)
}

// zoomFloor is the minimum zoom at which a desktop of deskW x deskH still
// renders at least minW x minH pixels. E.g. minimal width 200 against
// desktop width 550 gives ratio 0.36, so the floor is 40 (4 * ZoomStep).
// The result is a multiple of ZoomStep in [MinZoom, NormalZoom].
func zoomFloor(minW, minH, deskW, deskH int) int {
	if deskW <= 0 || deskH <= 0 {
		return MinZoom
	}

	widthRatio := float64(minW) / float64(deskW)
	heightRatio := float64(minH) / float64(deskH)
	zoom := int(math.Ceil(10*math.Max(widthRatio, heightRatio))) * ZoomStep

	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > NormalZoom {
		return NormalZoom
	}
	return zoom
}

// queueResize kicks the toolkit to re-fit the window to its content.
func (c *Controller) queueResize() {
	c.tk.ResizeToNatural()
}
