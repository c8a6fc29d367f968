// Package image provides the pixel buffers brush tips are decoded into,
// resampled from, and stamped as.
package image

import "fmt"

// Format is the pixel layout of an ImageBuf.
type Format uint8

const (
	// FormatGray8 holds one byte of coverage per pixel: 0 leaves the canvas
	// untouched and 255 stamps full ink.
	FormatGray8 Format = iota

	// FormatRGBA8 is straight-alpha RGBA as colour brush files store it.
	// Buffers only carry it between decoding and premultiplication.
	FormatRGBA8

	// FormatRGBAPremul is premultiplied RGBA, the layout of colour tips and
	// coloured dabs. Resampling it never bleeds colour out of transparent
	// pixels.
	FormatRGBAPremul
)

// FormatInfo describes the memory layout of a Format.
type FormatInfo struct {
	BytesPerPixel   int
	HasAlpha        bool
	IsPremultiplied bool
	IsGrayscale     bool
}

var formats = [...]struct {
	name string
	info FormatInfo
}{
	FormatGray8:      {"Gray8", FormatInfo{BytesPerPixel: 1, IsGrayscale: true}},
	FormatRGBA8:      {"RGBA8", FormatInfo{BytesPerPixel: 4, HasAlpha: true}},
	FormatRGBAPremul: {"RGBAPremul", FormatInfo{BytesPerPixel: 4, HasAlpha: true, IsPremultiplied: true}},
}

// IsValid reports whether f is one of the defined formats.
func (f Format) IsValid() bool { return int(f) < len(formats) }

// Info returns the layout of f, or the zero FormatInfo for unknown values.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formats[f].info
}

func (f Format) BytesPerPixel() int    { return f.Info().BytesPerPixel }
func (f Format) HasAlpha() bool        { return f.Info().HasAlpha }
func (f Format) IsPremultiplied() bool { return f.Info().IsPremultiplied }
func (f Format) IsGrayscale() bool     { return f.Info().IsGrayscale }

func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Format(%d)", f)
	}
	return formats[f].name
}

// RowBytes returns the unpadded size of a row width pixels wide.
func (f Format) RowBytes(width int) int { return width * f.BytesPerPixel() }

// ImageBytes returns the unpadded size of a width×height buffer.
func (f Format) ImageBytes(width, height int) int { return f.RowBytes(width) * height }
