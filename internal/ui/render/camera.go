package render

import (
	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

// Camera is a viewport onto the breadboard canvas. World coordinates
// are board pixels (grid units times board.GridUnit); screen
// coordinates are window pixels.
type Camera struct {
	// Center position in world coordinates.
	CenterX float64
	CenterY float64

	// Zoom level (screen pixels per world pixel).
	Zoom float64

	// Screen dimensions (pixels).
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera centered on the world origin.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         1.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(pos board.Point) (float64, float64) {
	x := (pos.X - c.CenterX) * c.Zoom
	y := (pos.Y - c.CenterY) * c.Zoom
	x += float64(c.ScreenWidth) / 2.0
	y += float64(c.ScreenHeight) / 2.0
	return x, y
}

// ScreenToWorld converts screen pixels to a world position.
func (c *Camera) ScreenToWorld(screenX, screenY float64) board.Point {
	x := screenX - float64(c.ScreenWidth)/2.0
	y := screenY - float64(c.ScreenHeight)/2.0
	x /= c.Zoom
	y /= c.Zoom
	return board.Point{X: x + c.CenterX, Y: y + c.CenterY}
}

// Pan moves the camera by screen pixel offsets.
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms in or out at a specific screen position; factor > 1
// zooms in. The world point under the cursor stays put.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < 0.2 {
		c.Zoom = 0.2
	}
	if c.Zoom > 20.0 {
		c.Zoom = 20.0
	}

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit adjusts the camera so the rectangle min..max fills the view with
// some padding.
func (c *Camera) Fit(min, max board.Point) {
	width := max.X - min.X
	height := max.Y - min.Y
	if width <= 0 || height <= 0 {
		return
	}

	c.CenterX = (min.X + max.X) / 2.0
	c.CenterY = (min.Y + max.Y) / 2.0

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	if zoomX < zoomY {
		c.Zoom = zoomX
	} else {
		c.Zoom = zoomY
	}
}

// UpdateScreenSize updates the camera when the window is resized.
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}
