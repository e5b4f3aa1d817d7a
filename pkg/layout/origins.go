package layout

import (
	"fmt"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

// Origins is a registry of named anchor points set during one
// evaluation session, letting a sub-tree position itself relative to a
// reference point recorded earlier in the same traversal instead of
// its parent cursor.
type Origins struct {
	anchors map[string]board.Point
}

// NewOrigins returns an empty registry. Each document owns its own;
// there is no package-level instance.
func NewOrigins() *Origins {
	return &Origins{anchors: make(map[string]board.Point)}
}

// Set records pt under tag, overwriting any previous anchor.
func (o *Origins) Set(tag string, pt board.Point) {
	o.anchors[tag] = pt
}

// Get returns the anchor recorded under tag. Reading a tag that was
// never set is a model-authoring mistake and fails rather than
// defaulting silently.
func (o *Origins) Get(tag string) (board.Point, error) {
	pt, ok := o.anchors[tag]
	if !ok {
		return board.Point{}, fmt.Errorf("layout: origin tag %q read before being set", tag)
	}
	return pt, nil
}

// SetOrigin returns a drawing function that records the running cursor
// under tag and leaves the cursor unchanged.
func SetOrigin(o *Origins, tag string) DrawFunc {
	return func(cur board.Point, _ Env) (board.Point, error) {
		o.Set(tag, cur)
		return cur, nil
	}
}

// GoTo returns a drawing function that jumps the cursor to the anchor
// recorded under tag.
func GoTo(o *Origins, tag string) DrawFunc {
	return func(board.Point, Env) (board.Point, error) {
		return o.Get(tag)
	}
}
