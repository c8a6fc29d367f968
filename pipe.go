package brush

import (
	"fmt"

	"github.com/gogpu/brush/internal/pipe"
)

// NewPipeTip builds a tip that picks one of children per dab according to
// parasite. The children are used as given, not cloned.
//
// NewPipeTip panics if children is empty or if the product of the parasite
// ranks differs from the number of children.
func NewPipeTip(name string, parasite Parasite, children []*Tip, opts ...Option) *Tip {
	if len(children) == 0 {
		panic("brush: pipe tip needs at least one child")
	}
	if n := parasite.Cells(); n != len(children) {
		panic(fmt.Sprintf("brush: parasite ranks select %d cells, have %d children", n, len(children)))
	}
	return newPipeTip(name, parasite, children, newOptions(opts))
}

// newPipeTip accepts parasites whose ranks disagree with the child count,
// as image hoses in the wild often do; the flat index wraps instead.
func newPipeTip(name string, parasite Parasite, children []*Tip, o options) *Tip {
	spacing := children[0].spacing
	if o.spacing > 0 {
		spacing = o.spacing
	}
	return &Tip{
		name:     name,
		kind:     KindPipe,
		spacing:  clampSpacing(spacing),
		children: children,
		selector: pipe.NewSelector(parasite, len(children)),
		softness: 1,
		opts:     o,
	}
}

// Children returns the child tips of a pipe in cell order.
func (t *Tip) Children() []*Tip {
	return append([]*Tip(nil), t.children...)
}

// Parasite returns the selection configuration and stored indexes of a
// pipe tip.
func (t *Tip) Parasite() (Parasite, bool) {
	if t.kind != KindPipe {
		return Parasite{}, false
	}
	return t.selector.Parasite(), true
}

// pick chooses the child for sample without advancing the stored indexes,
// so MaskSize and ProduceDab agree for the same sample.
func (t *Tip) pick(sample PaintSample) *Tip {
	return t.children[t.selector.ChooseNext(sample)]
}

func (t *Tip) current() *Tip {
	return t.children[t.selector.CurrentBrushIndex()]
}
