package display

import "sync"

// Framebuffer is a software implementation of Surface and StatusRenderer.
//
// The logic thread draws and swaps; the render thread takes snapshots at
// its own cadence. Both sides go through one mutex, which is enough for a
// 64x64 grid at tick rates.
type Framebuffer struct {
	mu sync.Mutex

	width, height int
	front, back   []RGB

	brightness int
	maxBright  int

	statusText   string
	statusScroll bool
	statusShown  bool
}

// NewFramebuffer returns a framebuffer with both buffers cleared to black.
func NewFramebuffer(width, height, maxBrightness int) *Framebuffer {
	return &Framebuffer{
		width:     width,
		height:    height,
		front:     make([]RGB, width*height),
		back:      make([]RGB, width*height),
		maxBright: maxBrightness,
	}
}

// Width returns the panel width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the panel height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Clear implements Surface.
func (f *Framebuffer) Clear() {
	f.mu.Lock()
	for i := range f.back {
		f.back[i] = RGB{}
	}
	f.mu.Unlock()
}

// DrawPixel implements Surface.
func (f *Framebuffer) DrawPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.mu.Lock()
	f.back[y*f.width+x] = RGB{R: r, G: g, B: b}
	f.mu.Unlock()
}

// SwapBuffers implements Surface. The back buffer becomes visible and is
// copied forward so the next draw starts from the published frame.
func (f *Framebuffer) SwapBuffers() {
	f.mu.Lock()
	f.front, f.back = f.back, f.front
	copy(f.back, f.front)
	f.mu.Unlock()
}

// SetBrightness implements Surface, clamping to [0, max].
func (f *Framebuffer) SetBrightness(level int) {
	if level < 0 {
		level = 0
	}
	if level > f.maxBright {
		level = f.maxBright
	}
	f.mu.Lock()
	f.brightness = level
	f.mu.Unlock()
}

// Brightness returns the current scan-out brightness.
func (f *Framebuffer) Brightness() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.brightness
}

// ShowStatus implements StatusRenderer.
func (f *Framebuffer) ShowStatus(text string, scroll bool) {
	f.mu.Lock()
	f.statusText = text
	f.statusScroll = scroll
	f.statusShown = true
	f.mu.Unlock()
}

// ClearStatus implements StatusRenderer.
func (f *Framebuffer) ClearStatus() {
	f.mu.Lock()
	f.statusText = ""
	f.statusScroll = false
	f.statusShown = false
	f.mu.Unlock()
}

// Snapshot is what the render thread reads each refresh.
type Snapshot struct {
	Width, Height int
	Pixels        []RGB // front buffer copy, row-major
	Brightness    int
	MaxBrightness int

	StatusText   string
	StatusScroll bool
	StatusShown  bool
}

// Snapshot copies the published frame and status layer state.
func (f *Framebuffer) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	px := make([]RGB, len(f.front))
	copy(px, f.front)
	return Snapshot{
		Width:         f.width,
		Height:        f.height,
		Pixels:        px,
		Brightness:    f.brightness,
		MaxBrightness: f.maxBright,
		StatusText:    f.statusText,
		StatusScroll:  f.statusScroll,
		StatusShown:   f.statusShown,
	}
}
