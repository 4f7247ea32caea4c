package catalog

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
)

// Builtin returns the in-memory catalog used when no storage is attached:
// a black screen, two static test cards and one generated animation. This
// mirrors the hardware build's no-SD mode, where fixed bitmaps stand in
// for card content.
func Builtin(width, height int) *Catalog {
	return &Catalog{items: []Item{
		{Name: "black", Kind: KindImage, data: encodePNG(solid(width, height, color.RGBA{A: 255}))},
		{Name: "gradient", Kind: KindImage, data: encodePNG(gradient(width, height))},
		{Name: "checker", Kind: KindImage, data: encodePNG(checker(width, height))},
		{Name: "color-cycle", Kind: KindGIF, data: encodeCycleGIF(width, height)},
	}}
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / max(1, w-1)),
				G: uint8(y * 255 / max(1, h-1)),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 64, G: 0, B: 96, A: 255})
			}
		}
	}
	return img
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	// Encoding a well-formed in-memory image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// encodeCycleGIF builds a small hue-cycling animation, 100ms per frame.
func encodeCycleGIF(w, h int) []byte {
	const frames = 12

	anim := &gif.GIF{LoopCount: 0}
	for i := 0; i < frames; i++ {
		c := cycleColor(i, frames)
		pal := color.Palette{color.RGBA{A: 255}, c}
		frame := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				// Diagonal wipe so motion is visible.
				if (x+y+i*4)%16 < 8 {
					frame.SetColorIndex(x, y, 1)
				}
			}
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10) // 1/100s units
	}

	var buf bytes.Buffer
	_ = gif.EncodeAll(&buf, anim)
	return buf.Bytes()
}

func cycleColor(i, n int) color.RGBA {
	third := n / 3
	switch {
	case i < third:
		return color.RGBA{R: 255, G: uint8(i * 255 / third), A: 255}
	case i < 2*third:
		return color.RGBA{G: 255, B: uint8((i - third) * 255 / third), A: 255}
	default:
		return color.RGBA{B: 255, R: uint8((i - 2*third) * 255 / third), A: 255}
	}
}
