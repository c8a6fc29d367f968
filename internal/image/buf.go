package image

import "errors"

var (
	ErrInvalidDimensions = errors.New("image: width and height must be positive")
	ErrInvalidFormat     = errors.New("image: unknown pixel format")
	ErrInvalidStride     = errors.New("image: stride shorter than a row")
	ErrDataTooSmall      = errors.New("image: pixel data shorter than stride*height")
	ErrOutOfBounds       = errors.New("image: pixel outside the buffer")
)

// ImageBuf is a tightly addressed pixel buffer: row y starts at y*stride.
//
// Buffers held by a brush tip or a pyramid level are never written after
// construction and may be read from any number of goroutines. Buffers
// returned as dabs belong to the caller.
type ImageBuf struct {
	data          []byte
	width, height int
	stride        int
	format        Format
}

func checkGeometry(width, height int, format Format) error {
	switch {
	case width <= 0 || height <= 0:
		return ErrInvalidDimensions
	case !format.IsValid():
		return ErrInvalidFormat
	}
	return nil
}

// NewImageBuf allocates a zeroed width×height buffer without row padding.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if err := checkGeometry(width, height, format); err != nil {
		return nil, err
	}
	stride := format.RowBytes(width)
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// MustNew is NewImageBuf for sizes the caller has already clamped to ≥ 1.
func MustNew(width, height int, format Format) *ImageBuf {
	b, err := NewImageBuf(width, height, format)
	if err != nil {
		panic(err)
	}
	return b
}

// FromRaw wraps data without copying it, so writes through either side are
// visible to the other.
func FromRaw(data []byte, width, height int, format Format, stride int) (*ImageBuf, error) {
	if err := checkGeometry(width, height, format); err != nil {
		return nil, err
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}
	n := stride * height
	if len(data) < n {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{data: data[:n], width: width, height: height, stride: stride, format: format}, nil
}

// Clone returns a copy that shares no pixel memory with b.
func (b *ImageBuf) Clone() *ImageBuf {
	c := *b
	c.data = append([]byte(nil), b.data...)
	return &c
}

func (b *ImageBuf) Width() int         { return b.width }
func (b *ImageBuf) Height() int        { return b.height }
func (b *ImageBuf) Bounds() (int, int) { return b.width, b.height }
func (b *ImageBuf) Stride() int        { return b.stride }
func (b *ImageBuf) Format() Format     { return b.format }

// Data returns the backing pixel memory, row padding included.
func (b *ImageBuf) Data() []byte { return b.data }

// RowBytes returns the pixels of row y without padding, or nil when y is
// outside the buffer.
func (b *ImageBuf) RowBytes(y int) []byte {
	if uint(y) >= uint(b.height) {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

func (b *ImageBuf) offset(x, y int) int {
	if uint(x) >= uint(b.width) || uint(y) >= uint(b.height) {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// GetRGBA returns the stored channels at (x, y). A Gray8 pixel reads as
// premultiplied white at its coverage. Pixels outside the buffer are zero.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	off := b.offset(x, y)
	switch {
	case off < 0:
		return 0, 0, 0, 0
	case b.format == FormatGray8:
		v := b.data[off]
		return v, v, v, v
	}
	p := b.data[off : off+4 : off+4]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA stores a pixel. Gray8 buffers keep only a, as coverage.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) error {
	off := b.offset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	if b.format == FormatGray8 {
		b.data[off] = a
		return nil
	}
	copy(b.data[off:off+4], []byte{r, g, bl, a})
	return nil
}

// Gray returns the first channel at (x, y), or 0 outside the image.
func (b *ImageBuf) Gray(x, y int) uint8 {
	if off := b.offset(x, y); off >= 0 {
		return b.data[off]
	}
	return 0
}

// Equal reports whether two buffers have the same geometry, format and pixels.
func (b *ImageBuf) Equal(o *ImageBuf) bool {
	if b.width != o.width || b.height != o.height || b.format != o.format {
		return false
	}
	for y := range b.height {
		if string(b.RowBytes(y)) != string(o.RowBytes(y)) {
			return false
		}
	}
	return true
}

// Premultiplied returns a FormatRGBAPremul copy of a FormatRGBA8 buffer.
// Other formats are returned unchanged.
func (b *ImageBuf) Premultiplied() *ImageBuf {
	if b.format != FormatRGBA8 {
		return b
	}
	out := MustNew(b.width, b.height, FormatRGBAPremul)
	for y := range b.height {
		src, dst := b.RowBytes(y), out.RowBytes(y)
		for i := 0; i < len(src); i += 4 {
			a := uint16(src[i+3])
			dst[i] = byte((uint16(src[i])*a + 127) / 255)
			dst[i+1] = byte((uint16(src[i+1])*a + 127) / 255)
			dst[i+2] = byte((uint16(src[i+2])*a + 127) / 255)
			dst[i+3] = byte(a)
		}
	}
	return out
}

// ToCoverage converts a colour buffer into a Gray8 coverage mask where dark,
// opaque pixels carry ink: coverage = (255 - luma) * alpha / 255.
// A Gray8 buffer is returned unchanged.
func (b *ImageBuf) ToCoverage() *ImageBuf {
	if b.format == FormatGray8 {
		return b
	}
	out := MustNew(b.width, b.height, FormatGray8)
	for y := range b.height {
		src, dst := b.RowBytes(y), out.RowBytes(y)
		for x := range b.width {
			r, g, bl, a := int(src[4*x]), int(src[4*x+1]), int(src[4*x+2]), int(src[4*x+3])
			if b.format == FormatRGBAPremul && a > 0 {
				r, g, bl = r*255/a, g*255/a, bl*255/a
			}
			luma := min((r*299+g*587+bl*114)/1000, 255)
			dst[x] = byte((255 - luma) * a / 255)
		}
	}
	return out
}

// Inverted returns a Gray8 copy with every value replaced by 255 - value.
// Legacy brush formats store 0 as full ink; tips store coverage.
func (b *ImageBuf) Inverted() *ImageBuf {
	out := MustNew(b.width, b.height, FormatGray8)
	for y := range b.height {
		src, dst := b.RowBytes(y), out.RowBytes(y)
		for x := range b.width {
			dst[x] = 255 - src[x*b.format.BytesPerPixel()]
		}
	}
	return out
}
