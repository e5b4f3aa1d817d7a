// Package circuit tracks the identity and geometry of placed circuit
// elements (wires and DIP chips) on a breadboard document.
//
// The package builds on pkg/board (hole grid and occupancy) and
// pkg/layout (drawing-program interpreter), and delegates all actual
// drawing to a Backend supplied by the caller.
//
// The central types are:
//   - Store: a keyed registry giving every placed entity a stable id,
//     so a later placement with the same id replaces or moves the
//     previously drawn primitives instead of accumulating orphans.
//   - Document: one editing session owning the hole matrix, the store,
//     the origin registry, and the id counters. Two documents never
//     share state, so multiple boards and tests run independently.
//
// Placement validation follows a strict order: footprint bounds are
// checked before hole occupancy, and a failed claim leaves every hole
// untouched. Both failures are recoverable user errors reported as
// ErrOutOfBounds and ErrOccupied.
package circuit
