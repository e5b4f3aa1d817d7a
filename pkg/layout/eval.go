package layout

import (
	"fmt"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

// Evaluate walks model in document order from origin, invoking every
// leaf drawing function with the running cursor, and returns the
// cursor produced by dir once the walk is complete.
//
// Errors abort the whole walk: a malformed node is a programming
// mistake in the model, not a recoverable drawing condition, so no
// partial-draw recovery is attempted.
func Evaluate(origin board.Point, scale float64, model Model, dir Direction, opts Options) (board.Point, error) {
	if scale <= 0 {
		return origin, fmt.Errorf("layout: scale must be positive, got %v", scale)
	}
	if dir == Inherit {
		dir = Horizontal
	}
	opts.Direction = dir
	return evaluate(origin, scale, model, opts)
}

func evaluate(origin board.Point, scale float64, model Model, ambient Options) (board.Point, error) {
	cur := origin

	for i, node := range model {
		if node == nil {
			return origin, fmt.Errorf("layout: node %d is nil: operation must be a drawing function or a nested model", i)
		}
		if node.repeat() < 1 {
			return origin, fmt.Errorf("layout: node %d has repeat count %d, want >= 1", i, node.repeat())
		}
		merged := node.options().merge(ambient)

		switch n := node.(type) {
		case Leaf:
			if n.Op == nil {
				return origin, fmt.Errorf("layout: node %d has no drawing function", i)
			}
			env := Env{Scale: scale, Opts: merged}
			for r := 0; r < n.Repeat; r++ {
				next, err := n.Op(cur, env)
				if err != nil {
					return origin, err
				}
				cur = next
			}
		case Group:
			if len(n.Children) == 0 {
				return origin, fmt.Errorf("layout: node %d is an empty group", i)
			}
			for r := 0; r < n.Repeat; r++ {
				next, err := evaluate(cur, scale, n.Children, merged)
				if err != nil {
					return origin, err
				}
				cur = next
			}
		default:
			return origin, fmt.Errorf("layout: node %d has unknown kind %T", i, node)
		}
	}

	return advance(origin, cur, scale, ambient), nil
}

// advance applies the node list's own direction to pick the cursor
// handed to the next sibling. Children already consumed the running
// cursor during the fold above.
func advance(origin, final board.Point, scale float64, opts Options) board.Point {
	unit := board.GridUnit * scale
	switch opts.Direction {
	case Vertical:
		return board.Point{X: origin.X, Y: final.Y + unit}
	case Custom:
		return board.Point{X: origin.X, Y: final.Y - opts.RowOffset*unit}
	default:
		return board.Point{X: final.X, Y: origin.Y}
	}
}
