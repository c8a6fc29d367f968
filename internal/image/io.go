package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif" // register decoders for single-image tips
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Decode decodes a single image (png, jpeg, gif, bmp, tiff, webp).
// Grayscale sources become FormatGray8 holding the raw gray values;
// everything else becomes FormatRGBAPremul.
func Decode(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return FromStdImage(img, FormatGray8), nil
	default:
		return FromStdImage(img, FormatRGBAPremul), nil
	}
}

// FromStdImage copies a standard library image into a new buffer of the
// given format. Gray8 targets take the luminance of the source.
func FromStdImage(img image.Image, format Format) *ImageBuf {
	bounds := img.Bounds()
	buf := MustNew(max(bounds.Dx(), 1), max(bounds.Dy(), 1), format)
	if bounds.Empty() {
		return buf
	}
	draw.Draw(buf.View(), buf.View().Bounds(), img, bounds.Min, draw.Src)
	return buf
}

// View returns a zero-copy standard library view of the buffer:
// *image.Gray for Gray8, *image.NRGBA for RGBA8, *image.RGBA for RGBAPremul.
// Writes through the view modify the buffer.
func (b *ImageBuf) View() draw.Image {
	rect := image.Rect(0, 0, b.width, b.height)
	switch b.format {
	case FormatGray8:
		return &image.Gray{Pix: b.data, Stride: b.stride, Rect: rect}
	case FormatRGBA8:
		return &image.NRGBA{Pix: b.data, Stride: b.stride, Rect: rect}
	default:
		return &image.RGBA{Pix: b.data, Stride: b.stride, Rect: rect}
	}
}

// AlphaView returns the buffer as an *image.Alpha when it is a Gray8
// coverage mask, for use as a draw mask. Returns nil for colour buffers.
func (b *ImageBuf) AlphaView() *image.Alpha {
	if b.format != FormatGray8 {
		return nil
	}
	return &image.Alpha{Pix: b.data, Stride: b.stride, Rect: image.Rect(0, 0, b.width, b.height)}
}

// EncodePNG encodes the image as PNG to the given writer. Coverage masks are
// written as white-on-transparent so they preview like the dab they stamp.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	var img image.Image = b.View()
	if b.format == FormatGray8 {
		img = &maskImage{a: b.AlphaView()}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// maskImage presents an alpha mask as premultiplied white.
type maskImage struct{ a *image.Alpha }

func (m *maskImage) ColorModel() color.Model { return color.RGBAModel }
func (m *maskImage) Bounds() image.Rectangle { return m.a.Rect }
func (m *maskImage) At(x, y int) color.Color {
	v := m.a.AlphaAt(x, y).A
	return color.RGBA{R: v, G: v, B: v, A: v}
}
