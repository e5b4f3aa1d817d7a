package circuit

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

func newTestDocument(t *testing.T) (*Document, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	doc, err := NewDocument(backend, Board830)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	return doc, backend
}

func TestPlaceChipClaimsFootprint(t *testing.T) {
	doc, _ := newTestDocument(t)

	anchor := board.Key{Col: 10, Row: 6} // band A bottom row
	id, err := doc.PlaceChip("", "74HC00", 14, 2, anchor)
	if err != nil {
		t.Fatalf("PlaceChip failed: %v", err)
	}

	for c := 10; c < 17; c++ {
		for _, row := range []int{6, 7} {
			h := doc.Matrix.Hole(board.Key{Col: c, Row: row})
			if h.State != board.Used {
				t.Errorf("hole %d,%d not USED under chip", c, row)
			}
		}
	}
	e, _ := doc.Store.Get(id)
	if len(e.Claims) != 14 {
		t.Errorf("chip claims %d holes, want 14", len(e.Claims))
	}
}

func TestPlaceChipBoundsPrecedeOccupancy(t *testing.T) {
	doc, _ := newTestDocument(t)

	// Pre-occupy a hole inside the would-be footprint; the bounds
	// failure must be reported, not the occupancy conflict.
	if ok, _ := doc.Matrix.TryClaim([]board.Key{{Col: 62, Row: 6}}); !ok {
		t.Fatal("pre-claim failed")
	}
	_, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 60, Row: 6})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("error = %v, want ErrOutOfBounds", err)
	}
	// Nothing else changed.
	if doc.Matrix.Hole(board.Key{Col: 60, Row: 6}).State != board.Free {
		t.Error("bounds failure mutated occupancy")
	}
}

func TestPlaceChipOccupancyConflictMutatesNothing(t *testing.T) {
	doc, _ := newTestDocument(t)

	if _, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 12, Row: 6}); err != nil {
		t.Fatalf("first placement failed: %v", err)
	}
	_, err := doc.PlaceChip("", "74HC08", 14, 2, board.Key{Col: 16, Row: 6})
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("error = %v, want ErrOccupied", err)
	}
	// The non-overlapping columns of the rejected footprint stay FREE.
	if doc.Matrix.Hole(board.Key{Col: 20, Row: 6}).State != board.Free {
		t.Error("failed placement left holes claimed")
	}
	if doc.Store.Len() != 1 {
		t.Errorf("store holds %d entities, want 1", doc.Store.Len())
	}
}

func TestMoveChipKeepsLabelAndReleasesOldFootprint(t *testing.T) {
	doc, _ := newTestDocument(t)

	id, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 10, Row: 6})
	if err != nil {
		t.Fatalf("placement failed: %v", err)
	}
	e, _ := doc.Store.Get(id)
	label := e.Label

	if _, err := doc.PlaceChip(id, "74HC00", 14, 2, board.Key{Col: 30, Row: 6}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if e.Label != label {
		t.Errorf("label changed on move: %q -> %q", label, e.Label)
	}
	if doc.Matrix.Hole(board.Key{Col: 10, Row: 6}).State != board.Free {
		t.Error("old footprint still USED after move")
	}
	if doc.Matrix.Hole(board.Key{Col: 30, Row: 6}).State != board.Used {
		t.Error("new footprint not USED after move")
	}
}

func TestMoveChipRestoresFootprintOnConflict(t *testing.T) {
	doc, _ := newTestDocument(t)

	id, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 10, Row: 6})
	if err != nil {
		t.Fatalf("placement failed: %v", err)
	}
	if _, err := doc.PlaceChip("", "74HC08", 14, 2, board.Key{Col: 30, Row: 6}); err != nil {
		t.Fatalf("second placement failed: %v", err)
	}

	_, err = doc.PlaceChip(id, "74HC00", 14, 2, board.Key{Col: 28, Row: 6})
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("error = %v, want ErrOccupied", err)
	}
	// The chip must still own its original holes.
	if doc.Matrix.Hole(board.Key{Col: 10, Row: 6}).State != board.Used {
		t.Error("failed move lost the original footprint claim")
	}
}

func TestPlaceWireClaimsBothEnds(t *testing.T) {
	doc, _ := newTestDocument(t)

	id, err := doc.PlaceWire("", "red", board.Key{Col: 5, Row: 2}, board.Key{Col: 9, Row: 4})
	if err != nil {
		t.Fatalf("PlaceWire failed: %v", err)
	}
	if doc.Matrix.Hole(board.Key{Col: 5, Row: 2}).State != board.Used {
		t.Error("wire start not USED")
	}
	if doc.Matrix.Hole(board.Key{Col: 9, Row: 4}).State != board.Used {
		t.Error("wire end not USED")
	}

	e, _ := doc.Store.Get(id)
	wantFrom := doc.Matrix.Hole(board.Key{Col: 5, Row: 2}).Pos
	if e.XY != wantFrom {
		t.Errorf("wire XY = %v, want %v", e.XY, wantFrom)
	}
}

func TestPlaceWireConflictIsAllOrNothing(t *testing.T) {
	doc, _ := newTestDocument(t)

	if ok, _ := doc.Matrix.TryClaim([]board.Key{{Col: 5, Row: 7}}); !ok {
		t.Fatal("pre-claim failed")
	}
	_, err := doc.PlaceWire("", "red", board.Key{Col: 5, Row: 6}, board.Key{Col: 5, Row: 7})
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("error = %v, want ErrOccupied", err)
	}
	if doc.Matrix.Hole(board.Key{Col: 5, Row: 6}).State != board.Free {
		t.Error("hole 5,6 changed state despite failed claim")
	}
}

func TestPlaceWireUnknownHole(t *testing.T) {
	doc, _ := newTestDocument(t)
	_, err := doc.PlaceWire("", "red", board.Key{Col: 5, Row: 2}, board.Key{Col: 99, Row: 99})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("error = %v, want ErrOutOfBounds", err)
	}
}

func TestRemoveReleasesHoles(t *testing.T) {
	doc, backend := newTestDocument(t)
	id, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 10, Row: 6})
	if err != nil {
		t.Fatalf("placement failed: %v", err)
	}
	doc.Remove(id)
	if doc.Matrix.Hole(board.Key{Col: 10, Row: 6}).State != board.Free {
		t.Error("holes still USED after remove")
	}
	if len(backend.live) != 0 {
		t.Errorf("%d primitives alive after remove", len(backend.live))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, _ := newTestDocument(t)

	chipID, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 10, Row: 6})
	if err != nil {
		t.Fatalf("chip placement failed: %v", err)
	}
	wireID, err := doc.PlaceWire("", "green", board.Key{Col: 3, Row: 2}, board.Key{Col: 8, Row: 3})
	if err != nil {
		t.Fatalf("wire placement failed: %v", err)
	}
	chip, _ := doc.Store.Get(chipID)
	wantLabel := chip.Label

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored, err := NewDocument(newFakeBackend(), Board830)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := restored.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	gotChip, ok := restored.Store.Get(chipID)
	if !ok {
		t.Fatalf("chip %s missing after load", chipID)
	}
	if gotChip.Label != wantLabel {
		t.Errorf("label = %q after load, want %q", gotChip.Label, wantLabel)
	}
	if _, ok := restored.Store.Get(wireID); !ok {
		t.Fatalf("wire %s missing after load", wireID)
	}
	if restored.Matrix.Hole(board.Key{Col: 10, Row: 6}).State != board.Used {
		t.Error("chip holes not re-claimed after load")
	}

	// A chip created after the load must not reuse a loaded label.
	newID, err := restored.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 40, Row: 6})
	if err != nil {
		t.Fatalf("post-load placement failed: %v", err)
	}
	newChip, _ := restored.Store.Get(newID)
	if newChip.Label == wantLabel {
		t.Errorf("post-load chip reused label %q", wantLabel)
	}
}

func TestLoadDrawsSavedChipLabel(t *testing.T) {
	doc, _ := newTestDocument(t)

	first, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 10, Row: 6})
	if err != nil {
		t.Fatalf("first placement failed: %v", err)
	}
	second, err := doc.PlaceChip("", "74HC00", 14, 2, board.Key{Col: 30, Row: 6})
	if err != nil {
		t.Fatalf("second placement failed: %v", err)
	}
	doc.Remove(first)
	e, _ := doc.Store.Get(second)
	wantLabel := e.Label // "74HC00-2"

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	backend := newFakeBackend()
	restored, err := NewDocument(backend, Board830)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := restored.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The backend must have drawn the saved label, never a minted one:
	// a retained renderer keeps displaying whatever replay handed it.
	if len(backend.chipLabels) != 1 || backend.chipLabels[0] != wantLabel {
		t.Fatalf("replay drew labels %v, want [%s]", backend.chipLabels, wantLabel)
	}
}

func TestLoadKeepsTypeNumberingContinuous(t *testing.T) {
	doc, _ := newTestDocument(t)

	// Ten chips mint ids _chip_1.._chip_10, which replay in lexical id
	// order (_chip_1, _chip_10, _chip_2, ...) so the loaded labels
	// arrive out of numeric order.
	for i := 0; i < 10; i++ {
		anchor := board.Key{Col: 1 + 4*i, Row: 2}
		if _, err := doc.PlaceChip("", "74HC00", 8, 2, anchor); err != nil {
			t.Fatalf("placement %d failed: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	restored, err := NewDocument(newFakeBackend(), Board830)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := restored.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Replay must not consume instance numbers: the next chip of the
	// type continues exactly one past the highest loaded label.
	id, err := restored.PlaceChip("", "74HC00", 8, 2, board.Key{Col: 1, Row: 4})
	if err != nil {
		t.Fatalf("post-load placement failed: %v", err)
	}
	e, _ := restored.Store.Get(id)
	if e.Label != "74HC00-11" {
		t.Errorf("post-load label = %q, want 74HC00-11", e.Label)
	}
}
