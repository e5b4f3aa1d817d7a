package circuit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
)

// Kind distinguishes the placeable entity families.
type Kind uint8

const (
	KindWire Kind = iota
	KindChip
)

func (k Kind) String() string {
	if k == KindChip {
		return "chip"
	}
	return "wire"
}

// Entity is the stored record of one placed element. The store owns
// the record; Handles are borrowed references into the backend used
// only to delete or move what was drawn before.
type Entity struct {
	ID      string
	Kind    Kind
	XY      board.Point
	Handles []Handle

	// Claims are the hole keys this entity occupies, kept so a move or
	// removal can release exactly what was claimed.
	Claims []board.Key

	// Wire fields.
	Color string
	Ends  [2]board.Key

	// Chip fields. Label is assigned once at creation and survives
	// moves; BtnMenu is the tri-state state of the chip's UI buttons,
	// opaque to this package.
	Type     string
	Label    string
	PinCount int
	Width    float64
	BtnMenu  [3]int8
}

// Store is the entity identity registry for one document. All counters
// live here rather than in package state, so re-entrant use across
// documents cannot cross-contaminate ids or labels.
type Store struct {
	backend    Backend
	entities   map[string]*Entity
	nextID     int
	typeCounts map[string]int
}

// NewStore returns an empty registry drawing through backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend:    backend,
		entities:   make(map[string]*Entity),
		typeCounts: make(map[string]int),
	}
}

// Get returns the entity stored under id.
func (s *Store) Get(id string) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (s *Store) Len() int { return len(s.entities) }

// IDs returns every entity id in deterministic order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) mintID(kind Kind) string {
	// Skip over ids already occupied by a loaded circuit.
	for {
		s.nextID++
		id := fmt.Sprintf("_%s_%d", kind, s.nextID)
		if _, exists := s.entities[id]; !exists {
			return id
		}
	}
}

// PlaceWire draws a wire under id. An empty or unknown id creates a
// fresh record (minting `_wire_<n>` when empty); a known id deletes
// the previously drawn primitives and redraws with the new geometry,
// keeping the same id. Returns the id actually used.
func (s *Store) PlaceWire(id string, geom WireGeometry, ends [2]board.Key, claims []board.Key) string {
	if prev, ok := s.entities[id]; ok {
		s.backend.Delete(prev.Handles)
		prev.XY = geom.From
		prev.Color = geom.Color
		prev.Ends = ends
		prev.Claims = claims
		prev.Handles = s.backend.DrawWire(geom)
		return id
	}

	if id == "" {
		id = s.mintID(KindWire)
	}
	s.entities[id] = &Entity{
		ID:      id,
		Kind:    KindWire,
		XY:      geom.From,
		Color:   geom.Color,
		Ends:    ends,
		Claims:  claims,
		Handles: s.backend.DrawWire(geom),
	}
	return id
}

// PlaceChip places a chip under id. A chip that was already drawn in
// this session is translated in place by the delta between its stored
// origin and the new one, preserving its primitives and its label; a
// new or not-yet-drawn chip is drawn fresh. Labels come from a
// per-type running count, assigned exactly once per created id.
func (s *Store) PlaceChip(id string, geom ChipGeometry, claims []board.Key) string {
	if prev, ok := s.entities[id]; ok {
		prev.Claims = claims
		if len(prev.Handles) > 0 {
			dx := geom.Origin.X - prev.XY.X
			dy := geom.Origin.Y - prev.XY.Y
			s.backend.Move(prev.Handles, dx, dy)
			prev.XY = geom.Origin
			return id
		}
		// Known id with nothing drawn yet (a record re-inflated from a
		// saved circuit): draw it now, keeping the saved label.
		prev.XY = geom.Origin
		prev.PinCount = geom.PinCount
		prev.Width = geom.Width
		geom.Label = prev.Label
		prev.Handles = s.backend.DrawChip(geom)
		return id
	}

	if id == "" {
		id = s.mintID(KindChip)
	}
	if geom.Label == "" {
		s.typeCounts[geom.Type]++
		geom.Label = fmt.Sprintf("%s-%d", geom.Type, s.typeCounts[geom.Type])
	} else {
		s.bumpTypeCount(geom.Type, geom.Label)
	}
	s.entities[id] = &Entity{
		ID:       id,
		Kind:     KindChip,
		XY:       geom.Origin,
		Type:     geom.Type,
		Label:    geom.Label,
		PinCount: geom.PinCount,
		Width:    geom.Width,
		Claims:   claims,
		Handles:  s.backend.DrawChip(geom),
	}
	return id
}

// bumpTypeCount keeps the per-type counter ahead of labels that arrive
// from a saved circuit, so chips created afterwards never reuse a
// loaded instance number.
func (s *Store) bumpTypeCount(chipType, label string) {
	suffix, ok := strings.CutPrefix(label, chipType+"-")
	if !ok {
		return
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return
	}
	if n > s.typeCounts[chipType] {
		s.typeCounts[chipType] = n
	}
}

// Remove deletes the entity's drawn primitives and drops its record.
// Removing an unknown id is a no-op.
func (s *Store) Remove(id string) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	s.backend.Delete(e.Handles)
	delete(s.entities, id)
}
