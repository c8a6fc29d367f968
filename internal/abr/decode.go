// Package abr decodes Photoshop brush archives (versions 1, 2 and 6) into
// greyscale coverage samples.
package abr

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/packbits"
	"github.com/gogpu/brush/internal/stream"
)

// Brush record types of versions 1 and 2.
const (
	typeComputed = 1
	typeSampled  = 2
)

// Fixed preamble lengths of version 6 records, by sub-version.
const (
	v6SkipSub1 = 37
	v6SkipSub2 = 264
)

// maxSide bounds a sample side so corrupt bounds cannot request huge
// allocations.
const maxSide = 1 << 14

// Sample is one decoded brush.
type Sample struct {
	Name string
	// Image is a Gray8 coverage mask.
	Image *image.ImageBuf
	// Spacing is the stored dab spacing as a fraction of the width, or 0
	// when the archive carries none.
	Spacing float64
}

// Result is the outcome of decoding one archive.
type Result struct {
	Version, SubVersion int
	// Samples in archive order. A record whose name repeats an earlier one
	// replaces it in place.
	Samples []Sample
	// Warnings lists records that were skipped.
	Warnings []error
	// Scanned is the record count derived from the "samp" section
	// (version 6 only).
	Scanned int
}

type decoder struct {
	c        *stream.Cursor
	res      *Result
	baseName string
	index    map[string]int
	log      *slog.Logger
}

// Decode parses data. name is the archive's file name and is used to
// synthesise brush names where the format stores none.
//
// A non-nil error with a non-nil Result means decoding stopped part way:
// the samples decoded before the failure are kept.
func Decode(data []byte, name string, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &decoder{
		c:        stream.NewCursor(data),
		res:      &Result{},
		baseName: strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
		index:    make(map[string]int),
		log:      log,
	}
	if d.baseName == "." || d.baseName == "" {
		d.baseName = "brush"
	}

	version, err := d.c.U16()
	if err != nil {
		return nil, fmt.Errorf("abr: header: %w", err)
	}
	d.res.Version = int(version)

	switch version {
	case 1, 2:
		count, err := d.c.U16()
		if err != nil {
			return nil, fmt.Errorf("abr: header: %w", err)
		}
		if count == 0 {
			return nil, ErrEmptyCollection
		}
		err = d.decodeV12(int(count))
		return d.res, err
	case 6:
		sub, err := d.c.U16()
		if err != nil {
			return nil, fmt.Errorf("abr: header: %w", err)
		}
		if sub != 1 && sub != 2 {
			return nil, fmt.Errorf("%w: 6.%d", ErrUnsupportedVersion, sub)
		}
		d.res.SubVersion = int(sub)
		err = d.decodeV6()
		if errors.Is(err, ErrEmptyCollection) {
			return nil, err
		}
		return d.res, err
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
}

func (d *decoder) warn(id int, err error) {
	d.log.Warn("abr: skipping record", "record", id, "err", err)
	d.res.Warnings = append(d.res.Warnings, fmt.Errorf("record %d: %w", id, err))
}

func (d *decoder) add(s Sample) {
	if i, ok := d.index[s.Name]; ok {
		d.res.Samples[i] = s
		return
	}
	d.index[s.Name] = len(d.res.Samples)
	d.res.Samples = append(d.res.Samples, s)
}

func (d *decoder) syntheticName(id int) string {
	return d.baseName + "_" + strconv.Itoa(id)
}

// validNext reports whether a computed record end lies inside the buffer.
func (d *decoder) validNext(next int64) bool {
	return next >= 0 && next <= int64(d.c.Len())
}

func (d *decoder) decodeV12(count int) error {
	for id := 1; id <= count; id++ {
		brushType, err := d.c.I16()
		if err != nil {
			return fmt.Errorf("abr: record %d: %w", id, err)
		}
		length, err := d.c.I32()
		if err != nil {
			return fmt.Errorf("abr: record %d: %w", id, err)
		}
		next := int64(d.c.Pos()) + int64(length)

		if brushType == typeSampled {
			s, dataErr, err := d.sampledV12(id)
			if err != nil {
				return fmt.Errorf("abr: record %d: %w", id, err)
			}
			if dataErr != nil {
				d.warn(id, dataErr)
			} else {
				d.add(s)
			}
		} else {
			bt := "computed"
			if brushType != typeComputed {
				bt = strconv.Itoa(int(brushType))
			}
			d.warn(id, fmt.Errorf("%w: %s", ErrUnsupportedBrushType, bt))
		}

		if !d.validNext(next) {
			d.warn(id, fmt.Errorf("%w: next record at %d outside [0, %d]", ErrCorruptRecord, next, d.c.Len()))
			return nil
		}
		_ = d.c.Seek(int(next))
	}
	return nil
}

// sampledV12 reads a version 1/2 sampled record. Errors in the fixed
// preamble are returned as err and stop the archive; errors in the pixel
// data are returned as dataErr and only skip the record.
func (d *decoder) sampledV12(id int) (s Sample, dataErr, err error) {
	if err = d.c.Skip(4); err != nil {
		return
	}
	spacing, err := d.c.U16()
	if err != nil {
		return
	}
	s.Spacing = float64(spacing) / 100

	s.Name = d.syntheticName(id)
	if d.res.Version == 2 {
		var name string
		if name, err = d.readUCS2(); err != nil {
			return
		}
		if name != "" {
			s.Name = name
		}
	}

	if err = d.c.Skip(9); err != nil {
		return
	}
	s.Image, dataErr, err = d.readSample()
	return
}

func (d *decoder) readUCS2() (string, error) {
	n, err := d.c.U32()
	if err != nil {
		return "", err
	}
	if int64(n)*2 > int64(d.c.Remaining()) {
		return "", fmt.Errorf("%w: name of %d characters", stream.ErrTruncatedInput, n)
	}
	raw, err := d.c.Bytes(int(n) * 2)
	if err != nil {
		return "", err
	}
	utf8, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: name: %w", ErrCorruptRecord, err)
	}
	return string(bytes.TrimRight(utf8, "\x00")), nil
}

// readSample reads bounds, depth, compression and the pixel plane shared by
// all versions.
func (d *decoder) readSample() (img *image.ImageBuf, dataErr, err error) {
	var bounds [4]int32
	for i := range bounds {
		if bounds[i], err = d.c.I32(); err != nil {
			return
		}
	}
	depth, err := d.c.I16()
	if err != nil {
		return
	}
	compression, err := d.c.U8()
	if err != nil {
		return
	}

	top, left, bottom, right := int64(bounds[0]), int64(bounds[1]), int64(bounds[2]), int64(bounds[3])
	w, h := right-left, bottom-top
	switch {
	case w <= 0 || h <= 0 || w > maxSide || h > maxSide:
		return nil, fmt.Errorf("%w: bounds %dx%d", ErrCorruptRecord, w, h), nil
	case depth != 8 && depth != 16:
		return nil, fmt.Errorf("%w: depth %d", ErrCorruptRecord, depth), nil
	}
	bpp := int(depth) / 8
	width, height := int(w), int(h)
	size := width * bpp * height

	var plane []byte
	if compression == 0 {
		raw, rerr := d.c.Bytes(size)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, rerr), nil
		}
		plane = raw
	} else {
		plane = make([]byte, size)
		if _, rerr := packbits.Decode(d.c, plane, height); rerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, rerr), nil
		}
	}

	img = image.MustNew(width, height, image.FormatGray8)
	for y := range height {
		dst := img.RowBytes(y)
		src := plane[y*width*bpp:]
		for x := range dst {
			// 16-bit samples keep their big-endian high byte.
			dst[x] = 255 - src[x*bpp]
		}
	}
	return img, nil, nil
}

func (d *decoder) decodeV6() error {
	if err := d.findSection("samp"); err != nil {
		return err
	}
	sectionLen, err := d.c.I32()
	if err != nil {
		return fmt.Errorf("abr: samp section: %w", err)
	}
	sectionStart := int64(d.c.Pos())
	sectionEnd := sectionStart + int64(sectionLen)
	if !d.validNext(sectionEnd) {
		return fmt.Errorf("%w: samp section ends at %d", ErrCorruptRecord, sectionEnd)
	}

	// Count records by walking their padded lengths.
	scanned := 0
	for pos := sectionStart; pos < sectionEnd; scanned++ {
		_ = d.c.Seek(int(pos))
		n, err := d.c.I32()
		if err != nil {
			return fmt.Errorf("abr: samp record %d: %w", scanned+1, err)
		}
		pos = int64(d.c.Pos()) + pad4(int64(n))
		if n < 0 || pos > sectionEnd {
			return fmt.Errorf("%w: samp record %d overruns its section", ErrCorruptRecord, scanned+1)
		}
	}
	d.res.Scanned = scanned
	if scanned == 0 {
		return ErrEmptyCollection
	}
	_ = d.c.Seek(int(sectionStart))

	skip := v6SkipSub1
	if d.res.SubVersion == 2 {
		skip = v6SkipSub2
	}

	decoded := 0
	for id := 1; id <= scanned; id++ {
		n, err := d.c.I32()
		if err != nil {
			return fmt.Errorf("abr: record %d: %w", id, err)
		}
		next := int64(d.c.Pos()) + pad4(int64(n))

		if err := d.c.Skip(skip); err != nil {
			return fmt.Errorf("abr: record %d: %w", id, err)
		}
		img, dataErr, err := d.readSample()
		if err != nil {
			return fmt.Errorf("abr: record %d: %w", id, err)
		}
		if dataErr != nil {
			d.warn(id, dataErr)
		} else {
			d.add(Sample{Name: d.syntheticName(id), Image: img})
			decoded++
		}

		if !d.validNext(next) {
			d.warn(id, fmt.Errorf("%w: next record at %d outside [0, %d]", ErrCorruptRecord, next, d.c.Len()))
			break
		}
		_ = d.c.Seek(int(next))
	}

	if decoded != scanned {
		d.res.Warnings = append(d.res.Warnings,
			fmt.Errorf("%w: samp section lists %d records, %d decoded", ErrCorruptRecord, scanned, decoded))
	}
	return nil
}

// findSection walks "8BIM" chunks from the current position and leaves the
// cursor just after the 4-byte name of the chunk called name.
func (d *decoder) findSection(name string) error {
	for !d.c.AtEnd() {
		tag, err := d.c.Bytes(4)
		if err != nil {
			return fmt.Errorf("abr: section tag: %w", err)
		}
		if string(tag) != "8BIM" {
			return fmt.Errorf("%w: section tag %q", ErrCorruptRecord, tag)
		}
		key, err := d.c.Bytes(4)
		if err != nil {
			return fmt.Errorf("abr: section name: %w", err)
		}
		if string(key) == name {
			return nil
		}
		n, err := d.c.U32()
		if err != nil {
			return fmt.Errorf("abr: section %q: %w", key, err)
		}
		next := int64(d.c.Pos()) + int64(n)
		if !d.validNext(next) {
			return fmt.Errorf("%w: section %q ends at %d", ErrCorruptRecord, key, next)
		}
		_ = d.c.Seek(int(next))
	}
	return ErrEmptyCollection
}

func pad4(n int64) int64 {
	return (n + 3) &^ 3
}
