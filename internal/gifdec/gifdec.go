// Package gifdec decodes animated GIFs and paints frames through a narrow
// render-target capability, the panel-side contract of the animation
// driver. Frames are composed with GIF disposal semantics, scaled to fit
// the panel (never upscaled) and centered.
package gifdec

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/drewsortega/bonnaroo-led/internal/display"
)

// RenderTarget is the drawing capability injected at construction.
// One implementation drives the panel layers, another the simulator
// framebuffer; tests record the calls.
type RenderTarget interface {
	ClearScreen()
	UpdateScreen()
	DrawPixel(x, y int, r, g, b uint8)
}

type surfaceTarget struct {
	s display.Surface
}

func (t surfaceTarget) ClearScreen()                      { t.s.Clear() }
func (t surfaceTarget) UpdateScreen()                     { t.s.SwapBuffers() }
func (t surfaceTarget) DrawPixel(x, y int, r, g, b uint8) { t.s.DrawPixel(x, y, r, g, b) }

// NewSurfaceTarget adapts a drawing surface to the decoder's render
// target.
func NewSurfaceTarget(s display.Surface) RenderTarget {
	return surfaceTarget{s: s}
}

// FrameStatus is the tagged result of DecodeFrame, replacing the bare
// negative-integer convention where loop completion and hard errors were
// indistinguishable.
type FrameStatus int

const (
	// FrameContinuing means a frame was drawn and more follow.
	FrameContinuing FrameStatus = iota
	// FrameLoopComplete means the drawn frame was the animation's last;
	// the decoder has rewound to the first frame.
	FrameLoopComplete
)

// alphaThreshold: frame pixels at or below this alpha are treated as
// transparent and not drawn.
const alphaThreshold = 128

// Decoder drives one animation at a time. StartDecoding tears down any
// prior animation's frames; exactly one decode session is live per
// Decoder.
type Decoder struct {
	target        RenderTarget
	width, height int

	frames []*image.RGBA
	delays []time.Duration
	cur    int

	// delay of the most recently drawn frame
	curDelay time.Duration
}

// New returns a decoder rendering into a width x height panel.
func New(target RenderTarget, width, height int) *Decoder {
	return &Decoder{target: target, width: width, height: height}
}

// StartDecoding reads and decodes a whole GIF stream, composing every
// frame up front. Any previously loaded animation is released.
func (d *Decoder) StartDecoding(r io.Reader) error {
	d.frames = nil
	d.delays = nil
	d.cur = 0

	g, err := gif.DecodeAll(r)
	if err != nil {
		return fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return fmt.Errorf("decode gif: no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	var prev *image.RGBA

	for i, frame := range g.Image {
		if g.Disposal != nil && i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			prev = cloneRGBA(canvas)
		}

		xdraw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, xdraw.Over)
		d.frames = append(d.frames, cloneRGBA(canvas))

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i] // 1/100s units
		}
		d.delays = append(d.delays, time.Duration(delay)*10*time.Millisecond)

		if g.Disposal != nil && i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				clearRect(canvas, frame.Bounds())
			case gif.DisposalPrevious:
				if prev != nil {
					canvas = prev
				}
			}
		}
	}
	return nil
}

// DecodeFrame draws the current frame and advances. After the final frame
// it rewinds and reports FrameLoopComplete. Calling it with no animation
// loaded is an error.
func (d *Decoder) DecodeFrame() (FrameStatus, error) {
	if len(d.frames) == 0 {
		return 0, fmt.Errorf("decode frame: no animation loaded")
	}

	d.target.ClearScreen()
	d.blit(d.frames[d.cur])
	d.target.UpdateScreen()

	d.curDelay = d.delays[d.cur]

	d.cur++
	if d.cur >= len(d.frames) {
		d.cur = 0
		return FrameLoopComplete, nil
	}
	return FrameContinuing, nil
}

// FrameDelay returns the delay reported for the most recently drawn
// frame, as stored in the file. The caller decides what to do with
// implausible values.
func (d *Decoder) FrameDelay() time.Duration { return d.curDelay }

// FrameCount returns the number of composed frames.
func (d *Decoder) FrameCount() int { return len(d.frames) }

// blit scales frame to fit the panel, centered, and draws opaque pixels.
func (d *Decoder) blit(frame *image.RGBA) {
	fw, fh := frame.Bounds().Dx(), frame.Bounds().Dy()
	if fw == 0 || fh == 0 {
		return
	}

	scale := minf(float64(d.width)/float64(fw), float64(d.height)/float64(fh))
	if scale > 1 {
		scale = 1
	}

	sw, sh := int(float64(fw)*scale), int(float64(fh)*scale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}

	scaled := frame
	if sw != fw || sh != fh {
		scaled = image.NewRGBA(image.Rect(0, 0, sw, sh))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	}

	offX := (d.width - sw) / 2
	offY := (d.height - sh) / 2
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			c := scaled.RGBAAt(x, y)
			if c.A > alphaThreshold {
				d.target.DrawPixel(offX+x, offY+y, c.R, c.G, c.B)
			}
		}
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

func clearRect(img *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{})
		}
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
