// Package display defines the pixel surface the animation driver draws to
// and a software framebuffer used by the simulator and tests.
//
// The layer model follows the panel library: a double-buffered background
// layer for image content, and a status layer (band plus scrolling text)
// drawn above it. The overlay never writes into the background buffers.
package display

// RGB is one panel pixel.
type RGB struct {
	R, G, B uint8
}

// Surface is the display contract the control loop depends on.
//
// Drawing goes to a back buffer; SwapBuffers publishes it. Brightness is
// applied at scan-out, not to stored pixels.
type Surface interface {
	// Clear fills the back buffer with black.
	Clear()

	// DrawPixel writes one pixel to the back buffer. Out-of-range
	// coordinates are ignored.
	DrawPixel(x, y int, r, g, b uint8)

	// SwapBuffers publishes the back buffer to the panel.
	SwapBuffers()

	// SetBrightness sets panel brightness, 0..max.
	SetBrightness(level int)
}

// StatusRenderer draws the transient status layer above the background.
// The overlay controller supplies only the string and scroll preference;
// fonts, the band and marquee movement belong to the renderer.
type StatusRenderer interface {
	// ShowStatus replaces the status text. scroll requests marquee
	// scrolling when the text exceeds the visible width.
	ShowStatus(text string, scroll bool)

	// ClearStatus removes the status text and its band.
	ClearStatus()
}
