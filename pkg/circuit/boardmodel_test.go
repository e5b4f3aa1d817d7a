package circuit

import (
	"fmt"
	"math"
	"testing"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/layout"
)

func roundedKey(p board.Point) string {
	return fmt.Sprintf("%.3f,%.3f", p.X, p.Y)
}

func drawnPositions(t *testing.T, size BoardSize) map[string]int {
	t.Helper()
	backend := newFakeBackend()
	doc, err := NewDocument(backend, size)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := doc.RedrawBoard(backend); err != nil {
		t.Fatalf("RedrawBoard failed: %v", err)
	}
	seen := make(map[string]int)
	for _, p := range backend.holes {
		seen[roundedKey(p)]++
	}
	if len(seen) != len(backend.holes) {
		t.Fatalf("board program drew %d holes but only %d distinct positions",
			len(backend.holes), len(seen))
	}
	return seen
}

func TestBoardProgramMatchesMatrix830(t *testing.T) {
	seen := drawnPositions(t, Board830)
	if len(seen) != 830 {
		t.Fatalf("board program drew %d holes, want 830", len(seen))
	}

	m := board.NewMatrix()
	if err := board.BuildMatrix830(1, 1, m); err != nil {
		t.Fatalf("BuildMatrix830 failed: %v", err)
	}
	for _, k := range m.Keys() {
		pos := m.Hole(k).Pos
		if seen[roundedKey(pos)] != 1 {
			t.Fatalf("matrix hole %s at %v was not drawn by the board program", k, pos)
		}
	}
}

func TestBoardProgramMatchesMatrix1260(t *testing.T) {
	seen := drawnPositions(t, Board1260)
	if len(seen) != 1660 {
		t.Fatalf("board program drew %d holes, want 1660", len(seen))
	}

	m := board.NewMatrix()
	if err := board.BuildMatrix1260(1, 1, m); err != nil {
		t.Fatalf("BuildMatrix1260 failed: %v", err)
	}
	missing := 0
	for _, k := range m.Keys() {
		if seen[roundedKey(m.Hole(k).Pos)] != 1 {
			missing++
		}
	}
	if missing != 0 {
		t.Fatalf("%d matrix holes were not drawn by the board program", missing)
	}
}

func TestBoardProgramScalesCursorArithmetic(t *testing.T) {
	// At scale 2 every drawn position doubles relative to no offset;
	// the column pitch between the first two band holes must be two
	// grid units.
	backend := newFakeBackend()
	doc, err := NewDocument(backend, Board830)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	model := BoardModel(backend, doc.Origins, Board830)
	origin := BoardOrigin(1, 1)
	if _, err := layout.Evaluate(origin, 2.0, model, layout.Horizontal, layout.Options{}); err != nil {
		t.Fatalf("evaluate at scale 2 failed: %v", err)
	}
	if len(backend.holes) < 2 {
		t.Fatal("no holes drawn")
	}
	pitch := backend.holes[1].X - backend.holes[0].X
	if math.Abs(pitch-2*board.GridUnit) > 1e-9 {
		t.Errorf("column pitch at scale 2 = %v, want %v", pitch, 2*board.GridUnit)
	}
}
