package render

import (
	"math"
	"testing"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.CenterX = 120
	cam.CenterY = 80
	cam.Zoom = 2.5

	world := board.Point{X: 52.5, Y: 97.5}
	sx, sy := cam.WorldToScreen(world)
	back := cam.ScreenToWorld(sx, sy)

	if math.Abs(back.X-world.X) > 1e-9 || math.Abs(back.Y-world.Y) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back, world)
	}
}

func TestCameraZoomAtKeepsCursorFixed(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Zoom = 1.0

	const sx, sy = 200.0, 150.0
	before := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(sx, sy, 1.5)
	after := cam.ScreenToWorld(sx, sy)

	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("point under cursor moved: %v -> %v", before, after)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.ZoomAt(0, 0, 1e9)
	if cam.Zoom > 20.0 {
		t.Errorf("zoom %v exceeds upper clamp", cam.Zoom)
	}
	cam.ZoomAt(0, 0, 1e-9)
	if cam.Zoom < 0.2 {
		t.Errorf("zoom %v below lower clamp", cam.Zoom)
	}
}

func TestCameraFit(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Fit(board.Point{X: 0, Y: 0}, board.Point{X: 400, Y: 100})

	if cam.CenterX != 200 || cam.CenterY != 50 {
		t.Errorf("center = (%v, %v), want (200, 50)", cam.CenterX, cam.CenterY)
	}
	// Width is the limiting dimension: 800*0.9/400 = 1.8.
	if math.Abs(cam.Zoom-1.8) > 1e-9 {
		t.Errorf("zoom = %v, want 1.8", cam.Zoom)
	}
}

func TestSceneHandlesDistinct(t *testing.T) {
	s := NewScene()
	h1 := s.DrawHole(board.Point{X: 1, Y: 1})
	hs := s.DrawWire(circuit.WireGeometry{From: board.Point{X: 1, Y: 1}, To: board.Point{X: 2, Y: 2}})
	h2 := s.DrawHole(board.Point{X: 3, Y: 3})

	seen := map[circuit.Handle]bool{h1: true}
	for _, h := range hs {
		if seen[h] {
			t.Fatalf("handle %d minted twice", h)
		}
		seen[h] = true
	}
	if seen[h2] {
		t.Fatalf("handle %d minted twice", h2)
	}
}

func TestSceneDeleteIdempotent(t *testing.T) {
	s := NewScene()
	hs := s.DrawWire(circuit.WireGeometry{From: board.Point{X: 0, Y: 0}, To: board.Point{X: 15, Y: 0}})

	s.Delete(hs)
	s.Delete(hs) // second delete of the same handles is a no-op

	if len(s.prims) != 0 {
		t.Errorf("expected empty scene, have %d primitives", len(s.prims))
	}
}

func TestSceneMoveTranslates(t *testing.T) {
	s := NewScene()
	hs := s.DrawChip(circuit.ChipGeometry{
		Origin:   board.Point{X: 52.5, Y: 97.5},
		Type:     "74HC00",
		PinCount: 14,
		Width:    2,
	})

	s.Move(hs, 30, -15)

	p := s.prims[hs[0]]
	if p.chip.Origin.X != 82.5 || p.chip.Origin.Y != 82.5 {
		t.Errorf("origin after move = %v", p.chip.Origin)
	}
}

func TestSceneBounds(t *testing.T) {
	s := NewScene()
	if _, _, ok := s.Bounds(); ok {
		t.Fatal("empty scene reported bounds")
	}

	s.DrawHole(board.Point{X: 10, Y: 20})
	s.DrawHole(board.Point{X: 100, Y: 5})
	// Wires do not contribute to board bounds.
	s.DrawWire(circuit.WireGeometry{From: board.Point{X: -500, Y: 0}, To: board.Point{X: 500, Y: 0}})

	min, max, ok := s.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if min.X != 10 || min.Y != 5 || max.X != 100 || max.Y != 20 {
		t.Errorf("bounds = %v..%v", min, max)
	}
}

func TestSceneResetClears(t *testing.T) {
	s := NewScene()
	s.DrawHole(board.Point{X: 1, Y: 1})
	s.DrawWire(circuit.WireGeometry{From: board.Point{X: 1, Y: 1}, To: board.Point{X: 2, Y: 2}})

	s.Reset()

	if len(s.prims) != 0 || len(s.order) != 0 {
		t.Errorf("scene not empty after reset: %d prims, %d order entries", len(s.prims), len(s.order))
	}
}
