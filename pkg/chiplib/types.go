// Package chiplib holds the descriptions of chip packages and chips a
// board can place: the DIP package geometry (pin count, body width)
// and the per-chip metadata. Libraries load from JSON records or from
// the compact text definition format parsed in parser.go.
package chiplib

import (
	"encoding/json"
	"fmt"
	"io"
)

// PackageDef describes one physical package, e.g. a DIP14.
type PackageDef struct {
	TypeName  string  `json:"type_name"`
	ChipWidth float64 `json:"chip_width"`
	PinCount  int     `json:"pin_count"`
}

// ChipDef describes one chip type and the logical functions its gates
// implement. Functions are carried as opaque names; no simulation
// semantics attach to them here.
type ChipDef struct {
	Name      string   `json:"name"`
	Package   string   `json:"package"`
	Functions []string `json:"functions"`
}

// Library is a loaded set of package and chip definitions.
type Library struct {
	packages map[string]PackageDef
	chips    map[string]ChipDef
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		packages: make(map[string]PackageDef),
		chips:    make(map[string]ChipDef),
	}
}

// AddPackage registers (or replaces) a package definition.
func (l *Library) AddPackage(def PackageDef) error {
	if def.TypeName == "" {
		return fmt.Errorf("chiplib: package has no type_name")
	}
	if def.PinCount < 2 || def.PinCount%2 != 0 {
		return fmt.Errorf("chiplib: package %s has invalid pin count %d", def.TypeName, def.PinCount)
	}
	if def.ChipWidth <= 0 {
		return fmt.Errorf("chiplib: package %s has invalid width %v", def.TypeName, def.ChipWidth)
	}
	l.packages[def.TypeName] = def
	return nil
}

// AddChip registers (or replaces) a chip definition. The referenced
// package must already be known.
func (l *Library) AddChip(def ChipDef) error {
	if def.Name == "" {
		return fmt.Errorf("chiplib: chip has no name")
	}
	if _, ok := l.packages[def.Package]; !ok {
		return fmt.Errorf("chiplib: chip %s references unknown package %q", def.Name, def.Package)
	}
	l.chips[def.Name] = def
	return nil
}

// Package looks up a package definition by type name.
func (l *Library) Package(typeName string) (PackageDef, bool) {
	def, ok := l.packages[typeName]
	return def, ok
}

// Chip looks up a chip definition by name.
func (l *Library) Chip(name string) (ChipDef, bool) {
	def, ok := l.chips[name]
	return def, ok
}

// Resolve returns the chip and its package in one step. A missing chip
// or package name is a recoverable user error surfaced to the caller;
// placement is aborted, nothing panics.
func (l *Library) Resolve(chipName string) (ChipDef, PackageDef, error) {
	chip, ok := l.chips[chipName]
	if !ok {
		return ChipDef{}, PackageDef{}, fmt.Errorf("chiplib: unknown chip %q", chipName)
	}
	pkg, ok := l.packages[chip.Package]
	if !ok {
		return ChipDef{}, PackageDef{}, fmt.Errorf("chiplib: chip %q references unknown package %q", chipName, chip.Package)
	}
	return chip, pkg, nil
}

// Chips returns every chip name in insertion-independent (map) order;
// callers needing determinism sort the result.
func (l *Library) Chips() []ChipDef {
	out := make([]ChipDef, 0, len(l.chips))
	for _, def := range l.chips {
		out = append(out, def)
	}
	return out
}

// Packages returns every package definition in map order; callers
// needing determinism sort the result.
func (l *Library) Packages() []PackageDef {
	out := make([]PackageDef, 0, len(l.packages))
	for _, def := range l.packages {
		out = append(out, def)
	}
	return out
}

// LoadPackagesJSON reads an array of package records.
func (l *Library) LoadPackagesJSON(r io.Reader) error {
	var defs []PackageDef
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return fmt.Errorf("chiplib: decoding packages: %w", err)
	}
	for _, def := range defs {
		if err := l.AddPackage(def); err != nil {
			return err
		}
	}
	return nil
}

// LoadChipsJSON reads an array of chip records.
func (l *Library) LoadChipsJSON(r io.Reader) error {
	var defs []ChipDef
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return fmt.Errorf("chiplib: decoding chips: %w", err)
	}
	for _, def := range defs {
		if err := l.AddChip(def); err != nil {
			return err
		}
	}
	return nil
}
