package view

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/gridcast/internal/palette"
)

// Image paints the frame: ceiling, floor, then wall columns blended over.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	horizon := f.Horizon()

	draw.Draw(img, image.Rect(0, 0, f.Width, horizon), image.NewUniform(palette.Ceiling), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, horizon, f.Width, f.Height), image.NewUniform(palette.Floor), image.Point{}, draw.Src)

	for _, c := range f.Columns {
		if !c.Hit || c.Width == 0 || c.Bottom == c.Top {
			continue
		}
		rect := image.Rect(c.X, c.Top, c.X+c.Width, c.Bottom)
		draw.Draw(img, rect, image.NewUniform(premultiply(c.Color)), image.Point{}, draw.Over)
	}
	return img
}

// premultiply converts a straight-alpha palette color to the premultiplied
// form image/draw expects.
func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Caption writes text in the top-left corner of img.
func Caption(img draw.Image, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, basicfont.Face7x13.Ascent+4),
	}
	d.DrawString(text)
}

// FromGLPixels copies RGBA pixels read back from OpenGL into an image.
// The rows are flipped since OpenGL has origin at bottom-left.
func FromGLPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

// SnapshotName returns a timestamped file name in dir.
func SnapshotName(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, now.Format("2006-01-02_15-04-05")))
}
