package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const placeholderSize = 200

var (
	placeholderOnce sync.Once
	placeholderImg  image.Image
)

// Placeholder returns the shared 200x200 error bitmap: dark gray with a red
// "ERROR" label. Every failed decode yields this exact bitmap, so repeated
// loads of an unreadable path are bitwise identical and cache cleanly.
func Placeholder() image.Image {
	placeholderOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
		draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{R: 64, G: 64, B: 64, A: 255}}, image.Point{}, draw.Src)

		label := "ERROR"
		face := basicfont.Face7x13
		width := font.MeasureString(face, label).Ceil()
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{R: 220, G: 40, B: 40, A: 255}),
			Face: face,
			Dot: fixed.P(
				(placeholderSize-width)/2,
				(placeholderSize+face.Metrics().Ascent.Ceil())/2,
			),
		}
		drawer.DrawString(label)
		placeholderImg = img
	})
	return placeholderImg
}
