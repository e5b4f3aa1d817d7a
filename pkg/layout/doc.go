// Package layout implements the declarative drawing-program model for
// breadboards and the recursive interpreter that evaluates it.
//
// A Model is an ordered list of nodes. Each node is either a Leaf
// wrapping a drawing function, or a Group wrapping a nested Model;
// both carry a repeat count and a typed Options record. Evaluate walks
// a Model in document order, threading a cursor position through every
// invocation and applying the model's advance policy once the walk is
// done.
//
// # Usage
//
//	origins := layout.NewOrigins()
//	model := layout.Model{
//		layout.Leaf{Op: drawRail, Repeat: 2},
//		layout.Group{Children: bandModel, Repeat: 5, Opts: layout.Options{
//			Direction: layout.Vertical,
//		}},
//	}
//	end, err := layout.Evaluate(origin, 1.0, model, layout.Horizontal, layout.Options{})
//
// Drawing functions receive the running cursor, the render scale and
// the merged options, and return the cursor for the next invocation.
// The interpreter itself performs no drawing and owns no state beyond
// the cursor; entity bookkeeping lives in pkg/circuit.
package layout
