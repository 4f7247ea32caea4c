package display

import "testing"

// TestFramebuffer_DrawNotVisibleUntilSwap tests double buffering: draws
// land in the back buffer and appear only after SwapBuffers.
func TestFramebuffer_DrawNotVisibleUntilSwap(t *testing.T) {
	f := NewFramebuffer(4, 4, 255)

	f.DrawPixel(1, 2, 10, 20, 30)

	snap := f.Snapshot()
	if snap.Pixels[2*4+1] != (RGB{}) {
		t.Error("pixel visible before swap")
	}

	f.SwapBuffers()
	snap = f.Snapshot()
	if got := snap.Pixels[2*4+1]; got != (RGB{10, 20, 30}) {
		t.Errorf("pixel after swap = %v, want {10 20 30}", got)
	}
}

// TestFramebuffer_DrawPixel_OutOfRange tests that out-of-range writes are
// ignored.
func TestFramebuffer_DrawPixel_OutOfRange(t *testing.T) {
	f := NewFramebuffer(2, 2, 255)
	f.DrawPixel(-1, 0, 1, 1, 1)
	f.DrawPixel(0, 2, 1, 1, 1)
	f.DrawPixel(2, 0, 1, 1, 1)
	f.SwapBuffers()

	for i, p := range f.Snapshot().Pixels {
		if p != (RGB{}) {
			t.Errorf("pixel %d = %v, want black", i, p)
		}
	}
}

// TestFramebuffer_SwapCopiesForward tests that after a swap the back
// buffer starts from the published frame, not stale content.
func TestFramebuffer_SwapCopiesForward(t *testing.T) {
	f := NewFramebuffer(2, 1, 255)
	f.DrawPixel(0, 0, 5, 5, 5)
	f.SwapBuffers()

	// Draw the other pixel only; the first must survive the next swap.
	f.DrawPixel(1, 0, 9, 9, 9)
	f.SwapBuffers()

	snap := f.Snapshot()
	if snap.Pixels[0] != (RGB{5, 5, 5}) || snap.Pixels[1] != (RGB{9, 9, 9}) {
		t.Errorf("pixels = %v, want [{5 5 5} {9 9 9}]", snap.Pixels)
	}
}

// TestFramebuffer_SetBrightness_Clamped tests brightness clamping.
func TestFramebuffer_SetBrightness_Clamped(t *testing.T) {
	f := NewFramebuffer(1, 1, 180)

	f.SetBrightness(-5)
	if f.Brightness() != 0 {
		t.Errorf("brightness = %d, want 0", f.Brightness())
	}

	f.SetBrightness(999)
	if f.Brightness() != 180 {
		t.Errorf("brightness = %d, want 180", f.Brightness())
	}
}

// TestFramebuffer_StatusLayerIndependent tests that the status layer does
// not touch background pixels.
func TestFramebuffer_StatusLayerIndependent(t *testing.T) {
	f := NewFramebuffer(2, 2, 255)
	f.DrawPixel(0, 0, 7, 7, 7)
	f.SwapBuffers()

	f.ShowStatus("BRT: 52", true)
	snap := f.Snapshot()
	if !snap.StatusShown || snap.StatusText != "BRT: 52" {
		t.Errorf("status = (%q, shown=%v), want (BRT: 52, true)", snap.StatusText, snap.StatusShown)
	}
	if snap.Pixels[0] != (RGB{7, 7, 7}) {
		t.Error("status write corrupted background pixel")
	}

	f.ClearStatus()
	snap = f.Snapshot()
	if snap.StatusShown || snap.StatusText != "" {
		t.Error("status not cleared")
	}
}
