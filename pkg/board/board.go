// Package board models the breadboard hole grid: the logical column/row
// coordinate system, the derived pixel position of every hole, and the
// FREE/USED occupancy state that placement checks against.
package board

import (
	"fmt"
	"sort"
)

// GridUnit is the pre-scale spacing between adjacent holes. Every
// coordinate in the system is an integer multiple or simple fraction
// of this value.
const GridUnit = 15.0

// Columns is the number of distribution columns on an 830-point board.
const Columns = 63

// Occupancy is the claim state of a single hole.
type Occupancy uint8

const (
	Free Occupancy = iota
	Used
)

func (o Occupancy) String() string {
	if o == Used {
		return "USED"
	}
	return "FREE"
}

// Point is a position in pre-scale board coordinates.
type Point struct {
	X float64
	Y float64
}

// Key identifies a hole by its logical column and row.
type Key struct {
	Col int
	Row int
}

func (k Key) String() string {
	return fmt.Sprintf("%d,%d", k.Col, k.Row)
}

// ParseKey parses the "col,row" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	var k Key
	if _, err := fmt.Sscanf(s, "%d,%d", &k.Col, &k.Row); err != nil {
		return Key{}, fmt.Errorf("board: invalid hole key %q", s)
	}
	return k, nil
}

// MarshalText renders the key in its "col,row" form, which is also how
// keys appear in saved circuit files.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the "col,row" form.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Band distinguishes the row families of a breadboard.
type Band uint8

const (
	BandDistribution Band = iota
	BandRail
)

func (b Band) String() string {
	switch b {
	case BandDistribution:
		return "distribution"
	case BandRail:
		return "rail"
	default:
		return fmt.Sprintf("band(%d)", uint8(b))
	}
}

// Hole is a single connection point. Its pixel position is fixed at
// matrix build time and never recomputed.
type Hole struct {
	Key   Key
	Pos   Point
	Band  Band
	State Occupancy

	// Link is reserved for electrical net identity. Rendering and
	// placement never read it.
	Link string
}

// Matrix maps hole keys to their records for one board (or a stacked
// pair of boards). It is plain mutable state owned by a Document; all
// access happens on the UI thread between interpreter traversals.
type Matrix map[Key]*Hole

// NewMatrix returns an empty matrix ready for BuildMatrix830 or
// BuildMatrix1260.
func NewMatrix() Matrix {
	return make(Matrix)
}

// Row layout of one 830-point board, relative to its rowOffset:
//
//	rowOffset+1  .. rowOffset+5   band A distribution rows
//	rowOffset+6  .. rowOffset+10  band B distribution rows
//	rowOffset+11 .. rowOffset+14  rail rows (top -, top +, bottom -, bottom +)
//
// A board therefore spans fifteen row indices, which is exactly the
// offset BuildMatrix1260 uses to stack a second board without key
// collisions.
const (
	bandRows     = 5
	boardRowSpan = 15

	// Rail rows hold ten groups of five holes separated by one empty
	// column: 59 column positions, 50 holes.
	railSpan     = 59
	railLeadIn   = 2
	railGroupLen = 5
)

// BuildMatrix830 populates m with every hole of one 830-point board:
// 63 columns across ten distribution rows plus four 50-hole rail rows.
// Pixel positions are a pure function of the offsets and GridUnit, so
// repeated builds with the same arguments yield identical coordinates.
// Offsets must be positive; anything else is a model-authoring mistake
// and is rejected rather than silently producing a skewed grid.
func BuildMatrix830(colOffset, rowOffset int, m Matrix) error {
	if m == nil {
		return fmt.Errorf("board: nil matrix")
	}
	if colOffset < 1 || rowOffset < 1 {
		return fmt.Errorf("board: offsets must be positive, got col=%d row=%d", colOffset, rowOffset)
	}

	off := float64(rowOffset - 1)

	// Distribution bands: five rows each, separated by the ravine.
	for k := 0; k < bandRows; k++ {
		yA := (5.5 + float64(k) + off) * GridUnit
		yB := (12.5 + float64(k) + off) * GridUnit
		for c := colOffset; c < colOffset+Columns; c++ {
			x := (0.5 + float64(c)) * GridUnit
			putHole(m, Key{Col: c, Row: rowOffset + 1 + k}, Point{X: x, Y: yA}, BandDistribution)
			putHole(m, Key{Col: c, Row: rowOffset + 1 + bandRows + k}, Point{X: x, Y: yB}, BandDistribution)
		}
	}

	// Rail rows: two pairs, indexed after the distribution rows.
	railYs := []float64{1.0, 2.0, 19.0, 20.0}
	for i, base := range railYs {
		row := rowOffset + 1 + 2*bandRows + i
		y := (base + off) * GridUnit
		for j := 0; j < railSpan; j++ {
			if j%(railGroupLen+1) == railGroupLen {
				continue // gap between groups of five
			}
			c := colOffset + railLeadIn + j
			x := (0.5 + float64(c)) * GridUnit
			putHole(m, Key{Col: c, Row: row}, Point{X: x, Y: y}, BandRail)
		}
	}

	return nil
}

// BuildMatrix1260 composes two 830-point builds into one matrix at a
// vertical offset of fifteen rows. The two row ranges are disjoint by
// construction, so the result holds exactly 1660 holes: the "1260"
// board name counts the doubled distribution points (2 x 630), not the
// rail holes.
func BuildMatrix1260(colOffset, rowOffset int, m Matrix) error {
	if err := BuildMatrix830(colOffset, rowOffset, m); err != nil {
		return err
	}
	return BuildMatrix830(colOffset, rowOffset+boardRowSpan, m)
}

func putHole(m Matrix, key Key, pos Point, band Band) {
	m[key] = &Hole{Key: key, Pos: pos, Band: band, State: Free}
}

// Hole returns the record for key, or nil if no such hole exists.
func (m Matrix) Hole(key Key) *Hole {
	return m[key]
}

// Keys returns every hole key in deterministic order. Intended for
// diagnostics and tests rather than per-frame iteration.
func (m Matrix) Keys() []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})
	return keys
}
