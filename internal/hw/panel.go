//go:build tinygo

package hw

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/hub75"
)

// Panel drives a HUB75 LED matrix through the SPI-based hub75 driver,
// implementing the drawing surface the control loop renders into.
type Panel struct {
	dev           hub75.Device
	width, height int
	maxBright     int
}

// PanelConfig names the pins the matrix is wired to.
type PanelConfig struct {
	Width, Height int
	MaxBrightness int

	SPI   *machine.SPI
	Latch machine.Pin
	OE    machine.Pin
	A     machine.Pin
	B     machine.Pin
	C     machine.Pin
	D     machine.Pin
}

// NewPanel configures the matrix driver.
func NewPanel(cfg PanelConfig) *Panel {
	dev := hub75.New(cfg.SPI, cfg.Latch, cfg.OE, cfg.A, cfg.B, cfg.C, cfg.D)
	dev.Configure(hub75.Config{
		Width:      int16(cfg.Width),
		Height:     int16(cfg.Height),
		RowPattern: int16(cfg.Height / 2),
		ColorDepth: 6,
		FastUpdate: true,
	})
	return &Panel{
		dev:       dev,
		width:     cfg.Width,
		height:    cfg.Height,
		maxBright: cfg.MaxBrightness,
	}
}

// Clear blanks the working frame.
func (p *Panel) Clear() {
	p.dev.ClearDisplay()
}

// DrawPixel sets one pixel in the working frame. Out-of-range
// coordinates are ignored.
func (p *Panel) DrawPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.dev.SetPixel(int16(x), int16(y), color.RGBA{R: r, G: g, B: b, A: 255})
}

// SwapBuffers scans the working frame out to the matrix.
func (p *Panel) SwapBuffers() {
	p.dev.Display()
}

// SetBrightness rescales the configured level into the driver's 0..255
// duty range.
func (p *Panel) SetBrightness(level int) {
	if level < 0 {
		level = 0
	}
	if level > p.maxBright {
		level = p.maxBright
	}
	duty := 0
	if p.maxBright > 0 {
		duty = level * 255 / p.maxBright
	}
	p.dev.SetBrightness(uint32(duty))
}

// ShowStatus implements the status layer. The matrix has no dedicated
// text band yet, so the text goes out over serial.
// TODO: draw the text into the top rows with a 3x5 bitmap font.
func (p *Panel) ShowStatus(text string, scroll bool) {
	println("status:", text)
}

// ClearStatus implements the status layer.
func (p *Panel) ClearStatus() {}
