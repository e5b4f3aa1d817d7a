package layout

import (
	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

// Direction selects how the interpreter advances the cursor after
// walking a node list.
type Direction uint8

const (
	// Inherit keeps the enclosing traversal's direction. It is the
	// zero value so an empty Options record changes nothing.
	Inherit Direction = iota

	// Horizontal adopts the final reported x; y stays at the origin.
	Horizontal

	// Vertical adopts the final reported y plus one grid unit; x stays
	// at the origin.
	Vertical

	// Custom adopts the final reported y minus Options.RowOffset grid
	// units, used to stack two sub-boards with a controlled gap.
	Custom
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Custom:
		return "custom"
	default:
		return "inherit"
	}
}

// Options is the typed per-node configuration record. A node's options
// are merged over the ambient options of the enclosing traversal, so
// unset fields inherit. For the numeric fields the zero value is
// "unset": a node cannot override an inherited nonzero RowOffset or
// Width back to zero, it can only replace it with another nonzero
// value.
type Options struct {
	// Direction overrides the advance mode for this node's own walk.
	Direction Direction

	// RowOffset is the vertical gap, in grid rows, subtracted by the
	// Custom advance policy.
	RowOffset float64

	// Width overrides the footprint width a drawing function assumes,
	// in grid units. Zero means the function's natural width.
	Width float64

	// Extra carries operation-specific knobs by name (wire color,
	// chip label, ...). Keys present here shadow the ambient value.
	Extra map[string]string
}

// merge returns o applied over ambient: set fields of o win, unset
// fields fall through. Zero is the unset marker for RowOffset and
// Width, so a zero in o always inherits the ambient value.
func (o Options) merge(ambient Options) Options {
	out := ambient
	if o.Direction != Inherit {
		out.Direction = o.Direction
	}
	if o.RowOffset != 0 {
		out.RowOffset = o.RowOffset
	}
	if o.Width != 0 {
		out.Width = o.Width
	}
	if len(o.Extra) > 0 {
		merged := make(map[string]string, len(ambient.Extra)+len(o.Extra))
		for k, v := range ambient.Extra {
			merged[k] = v
		}
		for k, v := range o.Extra {
			merged[k] = v
		}
		out.Extra = merged
	}
	return out
}

// Env is what a drawing function sees for one invocation: the render
// scale plus the merged options of every enclosing node.
type Env struct {
	Scale float64
	Opts  Options
}

// DrawFunc is a leaf drawing operation. It draws at the given cursor
// and returns the cursor appropriate to its own footprint, which the
// interpreter threads to the next invocation.
type DrawFunc func(cur board.Point, env Env) (board.Point, error)

// Node is one entry of a Model: either a Leaf or a Group. The set of
// implementations is closed; anything else is a malformed model.
type Node interface {
	repeat() int
	options() Options
}

// Leaf invokes a drawing function Repeat times.
type Leaf struct {
	Op     DrawFunc
	Repeat int
	Opts   Options
}

func (l Leaf) repeat() int      { return l.Repeat }
func (l Leaf) options() Options { return l.Opts }

// Group evaluates a nested model Repeat times as a single compound
// operation with its own internal direction semantics.
type Group struct {
	Children Model
	Repeat   int
	Opts     Options
}

func (g Group) repeat() int      { return g.Repeat }
func (g Group) options() Options { return g.Opts }

// Model is an ordered drawing program.
type Model []Node
