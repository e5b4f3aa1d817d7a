package circuit

import (
	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/layout"
)

// This file declares the drawing programs that paint a breadboard:
// the hole bands, the rail rows, and the stacking of two sub-boards
// for the 1260-point layout. The programs thread the interpreter's
// cursor through the same arithmetic the matrix builder uses, so the
// drawn holes land exactly on the matrix coordinates.

// BoardOrigin returns the evaluation origin for a board built at the
// given offsets: the center of the first band-A hole.
func BoardOrigin(colOffset, rowOffset int) board.Point {
	return board.Point{
		X: (0.5 + float64(colOffset)) * board.GridUnit,
		Y: (5.5 + float64(rowOffset-1)) * board.GridUnit,
	}
}

// drawHole paints one hole at the cursor and advances one column.
func drawHole(backend Backend) layout.DrawFunc {
	return func(cur board.Point, env layout.Env) (board.Point, error) {
		backend.DrawHole(cur)
		return board.Point{X: cur.X + board.GridUnit*env.Scale, Y: cur.Y}, nil
	}
}

// jumpBy moves the cursor by whole or fractional grid rows/columns
// without drawing.
func jumpBy(dCols, dRows float64) layout.DrawFunc {
	return func(cur board.Point, env layout.Env) (board.Point, error) {
		u := board.GridUnit * env.Scale
		return board.Point{X: cur.X + dCols*u, Y: cur.Y + dRows*u}, nil
	}
}

// boardModel830 is the drawing program for one 830-point board,
// relative to the cursor at the first band-A hole. It leaves the
// cursor at the board's left edge, twenty rows below its origin, which
// is what the 1260 stacking offset is computed from.
func boardModel830(backend Backend, origins *layout.Origins) layout.Model {
	hole := drawHole(backend)

	row := layout.Group{
		Children: layout.Model{layout.Leaf{Op: hole, Repeat: board.Columns}},
		Repeat:   1,
		Opts:     layout.Options{Direction: layout.Horizontal},
	}
	band := layout.Group{
		Children: layout.Model{row},
		Repeat:   5,
		Opts:     layout.Options{Direction: layout.Vertical},
	}

	// Rails: ten groups of five holes with one empty column between
	// groups, starting two columns in from the board edge.
	railGroup := layout.Group{
		Children: layout.Model{
			layout.Leaf{Op: hole, Repeat: 5},
			layout.Leaf{Op: jumpBy(1, 0), Repeat: 1},
		},
		Repeat: 1,
		Opts:   layout.Options{Direction: layout.Horizontal},
	}
	railRow := layout.Group{
		Children: layout.Model{railGroup},
		Repeat:   10,
		Opts:     layout.Options{Direction: layout.Horizontal},
	}
	rail := func(rowDelta float64) layout.Model {
		return layout.Model{
			layout.Leaf{Op: layout.GoTo(origins, "board"), Repeat: 1},
			layout.Leaf{Op: jumpBy(2, rowDelta), Repeat: 1},
			railRow,
		}
	}

	model := layout.Model{
		layout.Leaf{Op: layout.SetOrigin(origins, "board"), Repeat: 1},
		band,                                      // band A rows
		layout.Leaf{Op: jumpBy(0, 2), Repeat: 1},  // ravine
		band,                                      // band B rows
	}
	model = append(model, rail(-4.5)...) // top rail -
	model = append(model, rail(-3.5)...) // top rail +
	model = append(model, rail(13.5)...) // bottom rail -
	model = append(model, rail(14.5)...) // bottom rail +
	model = append(model,
		layout.Leaf{Op: layout.GoTo(origins, "board"), Repeat: 1},
		layout.Leaf{Op: jumpBy(0, 20), Repeat: 1},
	)
	return model
}

// BoardModel returns the drawing program for size, painting through
// backend. The 1260 variant stacks two 830 programs with the custom
// advance policy: the sub-board's final cursor sits twenty rows below
// its origin, so subtracting five rows starts the second sub-board
// fifteen rows down, matching BuildMatrix1260.
func BoardModel(backend Backend, origins *layout.Origins, size BoardSize) layout.Model {
	single := boardModel830(backend, origins)
	if size != Board1260 {
		return single
	}
	return layout.Model{
		layout.Group{
			Children: single,
			Repeat:   2,
			Opts:     layout.Options{Direction: layout.Custom, RowOffset: 5},
		},
	}
}

// RedrawBoard evaluates the document's board drawing program against
// backend at scale 1, the matrix's own coordinate space.
func (d *Document) RedrawBoard(backend Backend) error {
	model := BoardModel(backend, d.Origins, d.Size)
	origin := BoardOrigin(d.ColOffset, d.RowOffset)
	_, err := layout.Evaluate(origin, 1.0, model, layout.Horizontal, layout.Options{})
	return err
}
