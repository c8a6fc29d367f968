package brush

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"

	"github.com/gogpu/brush/internal/abr"
	"github.com/gogpu/brush/internal/gimp"
	"github.com/gogpu/brush/internal/image"
	"github.com/gogpu/brush/internal/pipe"
)

// Collection is the ordered, named set of tips decoded from one file.
type Collection struct {
	name   string
	tips   []*Tip
	byName map[string]int

	// Warnings lists records that were skipped and other non-fatal
	// problems, in file order.
	Warnings []error
}

func newCollection(name string) *Collection {
	return &Collection{name: name, byName: make(map[string]int)}
}

// add appends t, or overwrites the tip already stored under the same name
// so that pointers handed out earlier see the replacement.
func (c *Collection) add(t *Tip) {
	if i, ok := c.byName[t.name]; ok {
		*c.tips[i] = *t
		return
	}
	c.byName[t.name] = len(c.tips)
	c.tips = append(c.tips, t)
}

// Name returns the file name the collection was decoded from.
func (c *Collection) Name() string { return c.name }

// Len returns the number of tips.
func (c *Collection) Len() int { return len(c.tips) }

// Tips returns the tips in file order.
func (c *Collection) Tips() []*Tip { return append([]*Tip(nil), c.tips...) }

// Tip returns the tip called name.
func (c *Collection) Tip(name string) (*Tip, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.tips[i], true
}

// Names returns the tip names in file order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.tips))
	for i, t := range c.tips {
		names[i] = t.name
	}
	return names
}

type fileFormat uint8

const (
	formatUnknown fileFormat = iota
	formatABR
	formatGBR
	formatGIH
	formatImage
)

// detectFormat trusts the extension of name first and falls back to
// sniffing the content.
func detectFormat(data []byte, name string) fileFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".abr":
		return formatABR
	case ".gbr":
		return formatGBR
	case ".gih":
		return formatGIH
	}
	switch {
	case filetype.IsImage(data):
		return formatImage
	case len(data) >= 24 && string(data[20:24]) == "GIMP":
		return formatGBR
	case len(data) >= 4:
		switch binary.BigEndian.Uint16(data) {
		case 1, 2, 6:
			return formatABR
		}
	}
	return formatUnknown
}

// Decode reads a brush file held in memory: a Photoshop .abr archive, a
// GIMP .gbr brush or .gih image hose, or a single png, jpeg, gif, bmp, tiff
// or webp image. name is used to pick the format and to name tips that
// carry no name of their own.
//
// Records that cannot be decoded are skipped and listed in
// Collection.Warnings. When decoding stops early the tips read so far are
// returned together with the error. Every failure that leaves no tips at
// all satisfies errors.Is(err, ErrUnreadable).
func Decode(data []byte, name string, opts ...Option) (*Collection, error) {
	o := newOptions(opts)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrUnreadable, name)
	}

	var (
		c   *Collection
		err error
	)
	switch detectFormat(data, name) {
	case formatABR:
		c, err = decodeABR(data, name, o)
	case formatGBR:
		c, err = decodeGBR(data, name, o)
	case formatGIH:
		c, err = decodeGIH(data, name, o)
	case formatImage:
		c, err = decodeImage(data, name, o)
	default:
		return nil, fmt.Errorf("%w: %q is not a brush file", ErrUnreadable, name)
	}

	if c == nil || c.Len() == 0 {
		if err == nil && c != nil {
			err = errors.Join(c.Warnings...)
		}
		if err == nil {
			err = ErrEmptyCollection
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrUnreadable, name, err)
	}

	o.log().Debug("brush: decoded collection",
		"name", name, "tips", c.Len(), "warnings", len(c.Warnings))
	return c, err
}

func decodeABR(data []byte, name string, o options) (*Collection, error) {
	res, err := abr.Decode(data, name, o.log())
	if res == nil {
		return nil, err
	}
	c := newCollection(name)
	c.Warnings = res.Warnings
	for _, s := range res.Samples {
		c.add(newRasterTip(s.Name, s.Image, s.Spacing, o))
	}
	return c, err
}

func decodeGBR(data []byte, name string, o options) (*Collection, error) {
	b, err := gimp.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	c := newCollection(name)
	c.add(newRasterTip(tipName(b.Name, name, 0), b.Image, b.Spacing, o))
	return c, nil
}

func decodeGIH(data []byte, name string, o options) (*Collection, error) {
	h, err := gimp.DecodeHose(data, o.log())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	c := newCollection(name)
	c.Warnings = h.Warnings

	children := make([]*Tip, len(h.Brushes))
	for i, b := range h.Brushes {
		children[i] = newRasterTip(tipName(b.Name, h.Name, i+1), b.Image, b.Spacing, o)
	}
	if n := h.Parasite.Cells(); n != len(children) {
		w := fmt.Errorf("%w: ranks select %d cells, hose has %d brushes", pipe.ErrParasite, n, len(children))
		o.log().Warn("brush: hose parasite", "hose", h.Name, "err", w)
		c.Warnings = append(c.Warnings, w)
	}
	c.add(newPipeTip(tipName(h.Name, name, 0), h.Parasite, children, o))
	return c, nil
}

func decodeImage(data []byte, name string, o options) (*Collection, error) {
	img, err := image.Decode(data)
	if err != nil {
		return nil, err
	}
	if img.Format() == image.FormatGray8 {
		img = img.Inverted()
	}
	c := newCollection(name)
	c.add(newRasterTip(baseName(name), img, 0, o))
	return c, nil
}

// tipName falls back to the file base name, numbered when id > 0.
func tipName(stored, fallback string, id int) string {
	if stored != "" {
		return stored
	}
	base := baseName(fallback)
	if id > 0 {
		return base + "_" + strconv.Itoa(id)
	}
	return base
}

func baseName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		return "brush"
	}
	return base
}
