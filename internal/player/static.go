package player

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/drewsortega/bonnaroo-led/internal/catalog"
	"github.com/drewsortega/bonnaroo-led/internal/display"
)

// drawStatic decodes a still image item into the surface's back buffer.
// The image is scaled down to fit the panel if needed, never up, and
// centered. The caller swaps buffers.
func drawStatic(surface display.Surface, item catalog.Item, width, height int) error {
	rc, err := item.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", item.Name, err)
	}
	defer rc.Close()

	src, _, err := image.Decode(rc)
	if err != nil {
		return fmt.Errorf("decode %s: %w", item.Name, err)
	}

	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	iw, ih := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return fmt.Errorf("decode %s: empty image", item.Name)
	}

	scale := float64(width) / float64(iw)
	if s := float64(height) / float64(ih); s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}

	sw, sh := int(float64(iw)*scale), int(float64(ih)*scale)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}

	scaled := rgba
	if sw != iw || sh != ih {
		scaled = image.NewRGBA(image.Rect(0, 0, sw, sh))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), rgba, rgba.Bounds(), xdraw.Src, nil)
	}

	surface.Clear()
	offX := (width - sw) / 2
	offY := (height - sh) / 2
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			c := scaled.RGBAAt(x, y)
			surface.DrawPixel(offX+x, offY+y, c.R, c.G, c.B)
		}
	}
	return nil
}
