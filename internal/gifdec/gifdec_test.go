package gifdec

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"strings"
	"testing"
	"time"
)

// recordingTarget records render-target calls.
type recordingTarget struct {
	clears  int
	updates int
	pixels  map[[2]int]color.RGBA
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{pixels: make(map[[2]int]color.RGBA)}
}

func (r *recordingTarget) ClearScreen() {
	r.clears++
	r.pixels = make(map[[2]int]color.RGBA)
}

func (r *recordingTarget) UpdateScreen() { r.updates++ }

func (r *recordingTarget) DrawPixel(x, y int, red, g, b uint8) {
	r.pixels[[2]int{x, y}] = color.RGBA{R: red, G: g, B: b, A: 255}
}

// encodeTestGIF builds a w x h animation with one solid color per frame.
// delays are in 1/100s units.
func encodeTestGIF(t *testing.T, w, h int, colors []color.RGBA, delays []int) []byte {
	t.Helper()
	anim := &gif.GIF{}
	for i, c := range colors {
		pal := color.Palette{c}
		frame := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delays[i])
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestDecoder_StartDecoding_BadData tests that garbage input fails.
func TestDecoder_StartDecoding_BadData(t *testing.T) {
	d := New(newRecordingTarget(), 8, 8)
	if err := d.StartDecoding(strings.NewReader("not a gif")); err == nil {
		t.Error("expected error for non-GIF data")
	}
}

// TestDecoder_DecodeFrame_NoAnimation tests the not-loaded error.
func TestDecoder_DecodeFrame_NoAnimation(t *testing.T) {
	d := New(newRecordingTarget(), 8, 8)
	if _, err := d.DecodeFrame(); err == nil {
		t.Error("expected error when no animation is loaded")
	}
}

// TestDecoder_FrameSequence tests the clear/draw/update cycle, the
// tagged loop-complete result and the auto-rewind.
func TestDecoder_FrameSequence(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	data := encodeTestGIF(t, 8, 8, []color.RGBA{red, blue}, []int{5, 20})

	target := newRecordingTarget()
	d := New(target, 8, 8)
	if err := d.StartDecoding(bytes.NewReader(data)); err != nil {
		t.Fatalf("StartDecoding: %v", err)
	}
	if d.FrameCount() != 2 {
		t.Fatalf("FrameCount() = %d, want 2", d.FrameCount())
	}

	status, err := d.DecodeFrame()
	if err != nil {
		t.Fatalf("DecodeFrame 1: %v", err)
	}
	if status != FrameContinuing {
		t.Errorf("frame 1 status = %v, want FrameContinuing", status)
	}
	if got := target.pixels[[2]int{0, 0}]; got != red {
		t.Errorf("frame 1 pixel = %v, want red", got)
	}
	if d.FrameDelay() != 50*time.Millisecond {
		t.Errorf("frame 1 delay = %v, want 50ms", d.FrameDelay())
	}

	status, err = d.DecodeFrame()
	if err != nil {
		t.Fatalf("DecodeFrame 2: %v", err)
	}
	if status != FrameLoopComplete {
		t.Errorf("frame 2 status = %v, want FrameLoopComplete", status)
	}
	if got := target.pixels[[2]int{0, 0}]; got != blue {
		t.Errorf("frame 2 pixel = %v, want blue", got)
	}
	if d.FrameDelay() != 200*time.Millisecond {
		t.Errorf("frame 2 delay = %v, want 200ms", d.FrameDelay())
	}

	// Rewound: the next decode draws the first frame again.
	status, err = d.DecodeFrame()
	if err != nil {
		t.Fatalf("DecodeFrame 3: %v", err)
	}
	if status != FrameContinuing {
		t.Errorf("frame 3 status = %v, want FrameContinuing", status)
	}
	if got := target.pixels[[2]int{0, 0}]; got != red {
		t.Errorf("frame 3 pixel = %v, want red (rewound)", got)
	}

	if target.clears != 3 || target.updates != 3 {
		t.Errorf("clears/updates = %d/%d, want 3/3", target.clears, target.updates)
	}
}

// TestDecoder_ScalesDownAndCenters tests that an oversized animation is
// scaled to fit the panel and centered, never cropped.
func TestDecoder_ScalesDownAndCenters(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := encodeTestGIF(t, 32, 16, []color.RGBA{white}, []int{10})

	target := newRecordingTarget()
	d := New(target, 8, 8)
	if err := d.StartDecoding(bytes.NewReader(data)); err != nil {
		t.Fatalf("StartDecoding: %v", err)
	}
	if _, err := d.DecodeFrame(); err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}

	// 32x16 scaled by 0.25 -> 8x4, centered vertically at rows 2..5.
	for pos := range target.pixels {
		if pos[1] < 2 || pos[1] > 5 {
			t.Errorf("pixel drawn at %v, outside centered band", pos)
		}
	}
	if len(target.pixels) != 8*4 {
		t.Errorf("drew %d pixels, want %d", len(target.pixels), 8*4)
	}
}

// TestDecoder_NoUpscale tests that small animations are not stretched.
func TestDecoder_NoUpscale(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := encodeTestGIF(t, 4, 4, []color.RGBA{white}, []int{10})

	target := newRecordingTarget()
	d := New(target, 16, 16)
	if err := d.StartDecoding(bytes.NewReader(data)); err != nil {
		t.Fatalf("StartDecoding: %v", err)
	}
	if _, err := d.DecodeFrame(); err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}

	if len(target.pixels) != 4*4 {
		t.Errorf("drew %d pixels, want 16 (1:1, centered)", len(target.pixels))
	}
	if _, ok := target.pixels[[2]int{6, 6}]; !ok {
		t.Error("expected centered 4x4 block starting at (6,6)")
	}
}

// TestDecoder_StartDecoding_ReplacesAnimation tests that a new session
// tears down the previous animation.
func TestDecoder_StartDecoding_ReplacesAnimation(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	first := encodeTestGIF(t, 8, 8, []color.RGBA{red, red, red}, []int{10, 10, 10})
	second := encodeTestGIF(t, 8, 8, []color.RGBA{green}, []int{10})

	target := newRecordingTarget()
	d := New(target, 8, 8)
	if err := d.StartDecoding(bytes.NewReader(first)); err != nil {
		t.Fatal(err)
	}
	if _, err := d.DecodeFrame(); err != nil {
		t.Fatal(err)
	}

	if err := d.StartDecoding(bytes.NewReader(second)); err != nil {
		t.Fatal(err)
	}
	if d.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d after replace, want 1", d.FrameCount())
	}
	status, err := d.DecodeFrame()
	if err != nil {
		t.Fatal(err)
	}
	if status != FrameLoopComplete {
		t.Errorf("status = %v, want FrameLoopComplete for single-frame gif", status)
	}
	if got := target.pixels[[2]int{0, 0}]; got != green {
		t.Errorf("pixel = %v, want green", got)
	}
}
