package circuit

import (
	"errors"
	"fmt"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/layout"
)

// Recoverable placement errors. The UI catches these at the placement
// boundary and cancels the in-progress gesture; they never unwind an
// interpreter traversal.
var (
	ErrOutOfBounds = errors.New("circuit: footprint exceeds the board")
	ErrOccupied    = errors.New("circuit: hole already used")
)

// BoardSize selects the board topology of a document.
type BoardSize uint8

const (
	Board830 BoardSize = iota
	Board1260
)

// Document is one editing session: the hole matrix, the entity store,
// the named origin registry, and the board offsets, owned together so
// independent boards never share state. All methods are meant for the
// single UI thread; mutate only between interpreter traversals.
type Document struct {
	Matrix  board.Matrix
	Store   *Store
	Origins *layout.Origins

	Size      BoardSize
	ColOffset int
	RowOffset int
}

// NewDocument builds the hole matrix for the requested board size and
// wires an empty store onto backend.
func NewDocument(backend Backend, size BoardSize) (*Document, error) {
	d := &Document{
		Matrix:    board.NewMatrix(),
		Store:     NewStore(backend),
		Origins:   layout.NewOrigins(),
		Size:      size,
		ColOffset: 1,
		RowOffset: 1,
	}
	var err error
	switch size {
	case Board1260:
		err = board.BuildMatrix1260(d.ColOffset, d.RowOffset, d.Matrix)
	default:
		err = board.BuildMatrix830(d.ColOffset, d.RowOffset, d.Matrix)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ChipFootprint returns the hole keys a chip with pinCount pins claims
// when its pin-1 hole is at anchor: one hole per pin column on the
// anchor row and the row below it.
func ChipFootprint(anchor board.Key, pinCount int) ([]board.Key, error) {
	if pinCount < 2 || pinCount%2 != 0 {
		return nil, fmt.Errorf("circuit: invalid pin count %d", pinCount)
	}
	cols := pinCount / 2
	keys := make([]board.Key, 0, pinCount)
	for c := anchor.Col; c < anchor.Col+cols; c++ {
		keys = append(keys, board.Key{Col: c, Row: anchor.Row})
		keys = append(keys, board.Key{Col: c, Row: anchor.Row + 1})
	}
	return keys, nil
}

// PlaceChip places (or re-places, for a known id) a chip anchored at
// the given hole. The bounds check runs before any occupancy check,
// and a failed claim mutates nothing; when re-placing, the previous
// footprint is restored on failure. Returns the id actually used.
func (d *Document) PlaceChip(id, chipType string, pinCount int, width float64, anchor board.Key) (string, error) {
	return d.placeChip(id, chipType, "", pinCount, width, anchor)
}

// placeChip is PlaceChip with an explicit label, used by save replay
// so the backend draws the saved label instead of minting a fresh one.
func (d *Document) placeChip(id, chipType, label string, pinCount int, width float64, anchor board.Key) (string, error) {
	keys, err := ChipFootprint(anchor, pinCount)
	if err != nil {
		return "", err
	}

	cols := pinCount / 2
	if anchor.Col < d.ColOffset || anchor.Col+cols-1 > d.ColOffset+board.Columns-1 {
		return "", fmt.Errorf("%w: columns %d..%d outside %d..%d",
			ErrOutOfBounds, anchor.Col, anchor.Col+cols-1, d.ColOffset, d.ColOffset+board.Columns-1)
	}
	anchorHole := d.Matrix.Hole(anchor)
	if anchorHole == nil {
		return "", fmt.Errorf("%w: no hole at %s", ErrOutOfBounds, anchor)
	}

	var prevClaims []board.Key
	if prev, ok := d.Store.Get(id); ok {
		prevClaims = prev.Claims
		d.Matrix.Release(prevClaims)
	}

	ok, conflict := d.Matrix.TryClaim(keys)
	if !ok {
		d.Matrix.TryClaim(prevClaims) // restore the footprint we released
		if d.Matrix.Hole(conflict) == nil {
			return "", fmt.Errorf("%w: no hole at %s", ErrOutOfBounds, conflict)
		}
		return "", fmt.Errorf("%w: %s", ErrOccupied, conflict)
	}

	geom := ChipGeometry{
		Origin:   anchorHole.Pos,
		Type:     chipType,
		Label:    label,
		PinCount: pinCount,
		Width:    width,
	}
	return d.Store.PlaceChip(id, geom, keys), nil
}

// PlaceWire places (or re-routes, for a known id) a wire between two
// holes. Both endpoints are claimed all-or-nothing.
func (d *Document) PlaceWire(id, color string, from, to board.Key) (string, error) {
	fromHole := d.Matrix.Hole(from)
	toHole := d.Matrix.Hole(to)
	if fromHole == nil {
		return "", fmt.Errorf("%w: no hole at %s", ErrOutOfBounds, from)
	}
	if toHole == nil {
		return "", fmt.Errorf("%w: no hole at %s", ErrOutOfBounds, to)
	}

	var prevClaims []board.Key
	if prev, ok := d.Store.Get(id); ok {
		prevClaims = prev.Claims
		d.Matrix.Release(prevClaims)
	}

	keys := []board.Key{from, to}
	ok, conflict := d.Matrix.TryClaim(keys)
	if !ok {
		d.Matrix.TryClaim(prevClaims)
		return "", fmt.Errorf("%w: %s", ErrOccupied, conflict)
	}

	geom := WireGeometry{From: fromHole.Pos, To: toHole.Pos, Color: color}
	return d.Store.PlaceWire(id, geom, [2]board.Key{from, to}, keys), nil
}

// Remove releases the entity's holes, deletes its drawn primitives,
// and drops its record. Unknown ids are ignored.
func (d *Document) Remove(id string) {
	if e, ok := d.Store.Get(id); ok {
		d.Matrix.Release(e.Claims)
	}
	d.Store.Remove(id)
}
