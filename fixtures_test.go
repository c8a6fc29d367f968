package brush

import (
	"bytes"
	"encoding/binary"
	stdimage "image"
	"image/color"
	"image/png"
	"testing"
	"unicode/utf16"

	"github.com/gogpu/brush/internal/gimp"
	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/pipe"
)

type buf []byte

func (b buf) u8(v uint8) buf   { return append(b, v) }
func (b buf) u16(v uint16) buf { return binary.BigEndian.AppendUint16(b, v) }
func (b buf) i16(v int16) buf  { return b.u16(uint16(v)) }
func (b buf) u32(v uint32) buf { return binary.BigEndian.AppendUint32(b, v) }
func (b buf) i32(v int32) buf  { return b.u32(uint32(v)) }
func (b buf) raw(p []byte) buf { return append(b, p...) }
func (b buf) zeros(n int) buf  { return append(b, make([]byte, n)...) }

// inkPlane returns a w×h plane in archive convention (0 = full ink).
func inkPlane(w, h int) []byte {
	p := make([]byte, w*h)
	for i := range p {
		p[i] = byte(i * 11)
	}
	return p
}

func sampleBlock(w, h int) buf {
	return buf{}.i32(0).i32(0).i32(int32(h)).i32(int32(w)).i16(8).u8(0).raw(inkPlane(w, h))
}

func ucs2(s string) buf {
	units := utf16.Encode([]rune(s + "\x00"))
	b := buf{}.u32(uint32(len(units)))
	for _, u := range units {
		b = b.u16(u)
	}
	return b
}

// abrRecord frames a sampled version 1/2 record; an empty name omits the
// name field as version 1 does.
func abrRecord(name string, spacing uint16, block buf) buf {
	body := buf{}.zeros(4).u16(spacing)
	if name != "" {
		body = body.raw(ucs2(name))
	}
	body = body.zeros(9).raw(block)
	return buf{}.i16(2).i32(int32(len(body))).raw(body)
}

func sampledRecord(w, h int, spacing uint16) buf {
	return abrRecord("", spacing, sampleBlock(w, h))
}

func computedRecord() buf {
	return buf{}.i16(1).i32(6).zeros(6)
}

func archive(version uint16, records ...buf) []byte {
	b := buf{}.u16(version).u16(uint16(len(records)))
	for _, r := range records {
		b = b.raw(r)
	}
	return b
}

func v1Archive(records ...buf) []byte { return archive(1, records...) }

// rampGray returns a std gray image, white in the top-left corner.
func rampGray(w, h int) *stdimage.Gray {
	img := stdimage.NewGray(stdimage.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(255 - i*3)
	}
	return img
}

// solidAlpha returns a w×h coverage image filled with v.
func solidAlpha(w, h int, v uint8) *stdimage.Alpha {
	img := stdimage.NewAlpha(stdimage.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func solidRGBA(w, h int, c color.RGBA) *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func gimpBrush(name string, w, h int) *gimp.Brush {
	img := image.MustNew(w, h, image.FormatGray8)
	for i := range img.Data() {
		img.Data()[i] = byte(40 + i)
	}
	return &gimp.Brush{Name: name, Image: img, Spacing: 0.3}
}

func hoseBytes(name string, p pipe.Parasite, brushes ...*gimp.Brush) []byte {
	return gimp.EncodeHose(&gimp.Hose{Name: name, Parasite: p, Brushes: brushes})
}

func pngBytes(t *testing.T, img stdimage.Image) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return out.Bytes()
}

// widthPipe returns an incremental pipe whose children are 1..n pixels wide,
// so the chosen child can be read back from the dab width.
func widthPipe(n int, mode SelectionMode) *Tip {
	children := make([]*Tip, n)
	for i := range children {
		children[i] = NewRasterTip("cell", solidAlpha(i+1, 2, 255))
	}
	return NewPipeTip("widths", NewParasite(n, []SelectionMode{mode}, []int{n}), children)
}
