package circuit

import (
	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

// fakeBackend records every live primitive so tests can assert on
// accumulation, deletion, and translation.
type fakeBackend struct {
	next  Handle
	live  map[Handle]*fakePrimitive
	holes []board.Point

	// chipLabels records the label of every chip drawn, in draw order,
	// so tests can assert what a retained renderer would display.
	chipLabels []string

	deleteCalls int
	moveCalls   int
}

type fakePrimitive struct {
	kind string
	x, y float64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{live: make(map[Handle]*fakePrimitive)}
}

func (f *fakeBackend) add(kind string, x, y float64) Handle {
	f.next++
	f.live[f.next] = &fakePrimitive{kind: kind, x: x, y: y}
	return f.next
}

func (f *fakeBackend) DrawHole(center board.Point) Handle {
	f.holes = append(f.holes, center)
	return f.add("hole", center.X, center.Y)
}

func (f *fakeBackend) DrawWire(geom WireGeometry) []Handle {
	return []Handle{
		f.add("wire", geom.From.X, geom.From.Y),
		f.add("wire", geom.To.X, geom.To.Y),
	}
}

func (f *fakeBackend) DrawChip(geom ChipGeometry) []Handle {
	f.chipLabels = append(f.chipLabels, geom.Label)
	handles := []Handle{f.add("body", geom.Origin.X, geom.Origin.Y)}
	for i := 0; i < geom.PinCount; i++ {
		handles = append(handles, f.add("pin", geom.Origin.X, geom.Origin.Y))
	}
	return handles
}

func (f *fakeBackend) Delete(handles []Handle) {
	f.deleteCalls++
	for _, h := range handles {
		delete(f.live, h) // absent handles are a no-op
	}
}

func (f *fakeBackend) Move(handles []Handle, dx, dy float64) {
	f.moveCalls++
	for _, h := range handles {
		if p := f.live[h]; p != nil {
			p.x += dx
			p.y += dy
		}
	}
}
