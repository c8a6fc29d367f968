// Package pipe implements multi-axis sub-tip selection for pipe brushes
// (GIMP image hoses and their descendants).
package pipe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDim is the maximum number of selection axes.
const MaxDim = 4

// ErrParasite marks a malformed key in a parasite description.
var ErrParasite = errors.New("pipe: malformed parasite")

// Mode selects how one axis picks its index.
type Mode uint8

// Selection modes.
const (
	Constant Mode = iota
	Incremental
	Angular
	Velocity
	Random
	Pressure
	TiltX
	TiltY
)

var modeNames = [...]string{
	Constant:    "constant",
	Incremental: "incremental",
	Angular:     "angular",
	Velocity:    "velocity",
	Random:      "random",
	Pressure:    "pressure",
	TiltX:       "xtilt",
	TiltY:       "ytilt",
}

// String returns the parasite spelling of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode maps a parasite mode name to a Mode. Unknown names are Constant.
func ParseMode(s string) Mode {
	for m, name := range modeNames {
		if name == s {
			return Mode(m)
		}
	}
	return Constant
}

// Parasite is the selection configuration of a pipe brush.
type Parasite struct {
	// NCells is the number of sub-tips.
	NCells int
	// Dim is the number of axes in use, 1..MaxDim.
	Dim int
	// Rank is the number of cells along each axis.
	Rank [MaxDim]int
	// Selection is the mode of each axis.
	Selection [MaxDim]Mode
	// Index is the stored index of each axis.
	Index [MaxDim]int

	// brushesCount[i] is the flat-index stride of axis i.
	brushesCount [MaxDim]int
	// needsMovement is set when any axis is Angular.
	needsMovement bool
}

// NewParasite builds a parasite from explicit values. Dim is clamped to
// [1, MaxDim] and ncells to at least 1.
func NewParasite(ncells int, modes []Mode, ranks []int) Parasite {
	p := Parasite{NCells: max(ncells, 1), Dim: min(max(len(ranks), 1), MaxDim)}
	for i := 0; i < p.Dim && i < len(ranks); i++ {
		p.Rank[i] = ranks[i]
		if i < len(modes) {
			p.Selection[i] = modes[i]
		}
	}
	p.setBrushesCount()
	return p
}

// ParseParasite parses the space separated "key:value" text stored in image
// hose files. It never fails: bad keys and values are returned as warnings
// wrapping ErrParasite and the affected field keeps its default.
func ParseParasite(text string) (Parasite, []error) {
	p := Parasite{NCells: 1, Dim: 1}
	var warnings []error
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Errorf("%w: "+format, append([]any{ErrParasite}, args...)...))
	}

	for _, field := range strings.Fields(text) {
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			warn("field %q has no value", field)
			continue
		}

		switch {
		case key == "dim":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > MaxDim {
				warn("dim %q", value)
				n = 1
			}
			p.Dim = n
		case key == "ncells":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				warn("ncells %q", value)
				n = 1
			}
			p.NCells = n
		case strings.HasPrefix(key, "sel"):
			i, ok := axisIndex(key[len("sel"):])
			if !ok {
				warn("selection key %q", key)
				continue
			}
			p.Selection[i] = ParseMode(value)
		case strings.HasPrefix(key, "rank"):
			i, ok := axisIndex(key[len("rank"):])
			if !ok {
				warn("rank key %q", key)
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				warn("rank%d %q", i, value)
				continue
			}
			p.Rank[i] = n
		default:
			// Older hoses carry placement/cellwidth/cellheight keys we don't use.
			switch key {
			case "placement", "cellwidth", "cellheight", "step":
			default:
				warn("unknown key %q", key)
			}
		}
	}

	for i := p.Dim; i < MaxDim; i++ {
		p.Rank[i] = 0
	}
	p.setBrushesCount()
	return p, warnings
}

func axisIndex(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 || i >= MaxDim {
		return 0, false
	}
	return i, true
}

// setBrushesCount derives the per-axis strides: the last axis steps by
// NCells/rank, each lower axis by the stride above it divided by its rank.
func (p *Parasite) setBrushesCount() {
	p.needsMovement = false
	for i := range p.Dim {
		if p.Selection[i] == Angular {
			p.needsMovement = true
		}
	}

	p.brushesCount = [MaxDim]int{}
	last := p.Dim - 1
	if p.Rank[last] == 0 {
		return
	}
	p.brushesCount[last] = p.NCells / p.Rank[last]
	for i := last - 1; i >= 0; i-- {
		if p.Rank[i] == 0 {
			return
		}
		p.brushesCount[i] = p.brushesCount[i+1] / p.Rank[i]
	}
}

// NeedsMovement reports whether any axis depends on stroke direction.
func (p *Parasite) NeedsMovement() bool { return p.needsMovement }

// Stride returns the flat-index stride of axis i.
func (p *Parasite) Stride(i int) int { return p.brushesCount[i] }

// Cells returns the product of the ranks in use.
func (p *Parasite) Cells() int {
	n := 1
	for i := range p.Dim {
		n *= p.Rank[i]
	}
	return n
}

// String formats the parasite the way image hose files store it.
func (p *Parasite) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ncells:%d dim:%d", p.NCells, p.Dim)
	for i := range p.Dim {
		fmt.Fprintf(&sb, " rank%d:%d sel%d:%s", i, p.Rank[i], i, p.Selection[i])
	}
	return sb.String()
}
