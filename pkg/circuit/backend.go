package circuit

import "github.com/ProtoTraceLab/ProtoBoard/pkg/board"

// Handle identifies one drawn primitive owned by the rendering
// backend. The store keeps handles only to delete or move primitives
// it drew earlier; it never inspects them.
type Handle uint64

// WireGeometry describes one wire for the backend, in pre-scale board
// coordinates.
type WireGeometry struct {
	From  board.Point
	To    board.Point
	Color string
}

// ChipGeometry describes one DIP chip body for the backend. Origin is
// the pin-1 hole center; Width is the body width in grid units taken
// from the package record.
type ChipGeometry struct {
	Origin   board.Point
	Type     string
	Label    string
	PinCount int
	Width    float64
}

// Backend is the rendering seam the store depends on but does not
// implement. Draw calls return the handles of every primitive they
// issued; Delete must be idempotent (deleting an already-absent
// primitive is a no-op, not an error).
type Backend interface {
	DrawHole(center board.Point) Handle
	DrawWire(geom WireGeometry) []Handle
	DrawChip(geom ChipGeometry) []Handle
	Delete(handles []Handle)
	Move(handles []Handle, dx, dy float64)
}

// NullBackend satisfies Backend without drawing anything. It still
// mints distinct handles so identity bookkeeping behaves exactly as it
// would against a real renderer; used for headless validation and
// tests.
type NullBackend struct {
	next Handle
}

func (n *NullBackend) mint() Handle {
	n.next++
	return n.next
}

func (n *NullBackend) DrawHole(board.Point) Handle { return n.mint() }

func (n *NullBackend) DrawWire(WireGeometry) []Handle {
	return []Handle{n.mint(), n.mint()}
}

func (n *NullBackend) DrawChip(geom ChipGeometry) []Handle {
	handles := make([]Handle, 0, geom.PinCount+2)
	for i := 0; i < geom.PinCount+2; i++ {
		handles = append(handles, n.mint())
	}
	return handles
}

func (n *NullBackend) Delete([]Handle) {}
func (n *NullBackend) Move([]Handle, float64, float64) {}
