package gimp

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gogpu/brush/internal/pipe"
	"github.com/gogpu/brush/internal/stream"
)

// Hose is a decoded image hose: several brushes plus the parasite that
// says how to pick one per dab.
type Hose struct {
	Name     string
	Parasite pipe.Parasite
	Brushes  []*Brush
	// Warnings lists parasite problems and a short brush count.
	Warnings []error
}

// DecodeHose parses a .gih file. The first text line is the hose name;
// the second holds the brush count followed by the parasite.
func DecodeHose(data []byte, log *slog.Logger) (*Hose, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	nameLine, rest, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return nil, fmt.Errorf("%w: hose has no parasite line", ErrCorrupt)
	}
	paraLine, body, ok := bytes.Cut(rest, []byte{'\n'})
	if !ok {
		return nil, fmt.Errorf("%w: hose has no brushes", ErrCorrupt)
	}

	h := &Hose{Name: strings.TrimSpace(string(nameLine))}
	countText, paraText, _ := strings.Cut(strings.TrimSpace(string(paraLine)), " ")
	count, err := strconv.Atoi(countText)
	if err != nil || count < 1 {
		return nil, fmt.Errorf("%w: hose brush count %q", ErrCorrupt, countText)
	}

	h.Parasite, h.Warnings = pipe.ParseParasite(paraText)
	for _, w := range h.Warnings {
		log.Warn("gimp: hose parasite", "hose", h.Name, "err", w)
	}

	c := stream.NewCursor(body)
	for i := range count {
		b, err := DecodeFrom(c)
		if err != nil {
			if len(h.Brushes) == 0 {
				return nil, fmt.Errorf("gimp: hose %q brush %d: %w", h.Name, i+1, err)
			}
			w := fmt.Errorf("gimp: hose %q: %d of %d brushes decoded: %w", h.Name, len(h.Brushes), count, err)
			log.Warn("gimp: short hose", "hose", h.Name, "err", w)
			h.Warnings = append(h.Warnings, w)
			break
		}
		h.Brushes = append(h.Brushes, b)
	}
	return h, nil
}

// EncodeHose writes a hose in .gih layout.
func EncodeHose(h *Hose) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, "%s\n%d %s\n", h.Name, len(h.Brushes), h.Parasite.String())
	for _, b := range h.Brushes {
		out.Write(Encode(b))
	}
	return out.Bytes()
}
