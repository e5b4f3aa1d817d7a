package ui

import (
	"fmt"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/ProtoTraceLab/ProtoBoard/internal/ui/render"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

// snapRadius is how far (in grid units) a click may land from a hole
// center and still snap to it.
const snapRadius = 0.6

type viewportState struct {
	fitted   bool
	dragging bool
	lastPos  f32.Point

	// pendingWire is the first endpoint of an in-progress wire gesture.
	pendingWire *board.Key

	// movingChip is the id of a chip picked up with the select tool.
	movingChip string

	cursor board.Point
}

// cancelGesture drops any in-progress placement without touching the
// document.
func (a *App) cancelGesture() {
	a.viewport.pendingWire = nil
	a.viewport.movingChip = ""
}

func (a *App) layoutViewport(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	a.cam.UpdateScreenSize(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)
	if !a.viewport.fitted {
		if min, max, ok := a.scene.Bounds(); ok {
			a.cam.Fit(min, max)
			a.viewport.fitted = true
		}
	}

	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameSpace})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			if min, max, ok := a.scene.Bounds(); ok {
				a.cam.Fit(min, max)
			}
			gtx.Execute(op.InvalidateCmd{})
		}
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  a,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -120, Max: 120},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Scroll:
			if pe.Scroll.Y != 0 {
				factor := 1.0 - float64(pe.Scroll.Y)*0.002
				a.cam.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), factor)
				gtx.Execute(op.InvalidateCmd{})
			}
		case pointer.Press:
			if pe.Buttons == pointer.ButtonSecondary {
				a.cancelGesture()
				a.State.SetStatus("Cancelled")
				gtx.Execute(op.InvalidateCmd{})
				break
			}
			a.viewport.dragging = true
			a.viewport.lastPos = pe.Position
			a.pointerAction(float64(pe.Position.X), float64(pe.Position.Y), state)
			gtx.Execute(op.InvalidateCmd{})
		case pointer.Drag:
			if a.viewport.dragging && state.Tool == ToolSelect && a.viewport.movingChip == "" {
				dx := float64(pe.Position.X - a.viewport.lastPos.X)
				dy := float64(pe.Position.Y - a.viewport.lastPos.Y)
				a.cam.Pan(dx, dy)
				gtx.Execute(op.InvalidateCmd{})
			}
			a.viewport.lastPos = pe.Position
		case pointer.Release, pointer.Cancel:
			a.viewport.dragging = false
		case pointer.Move:
			a.viewport.cursor = a.cam.ScreenToWorld(float64(pe.Position.X), float64(pe.Position.Y))
			if a.viewport.pendingWire != nil || a.viewport.movingChip != "" {
				gtx.Execute(op.InvalidateCmd{})
			}
		}
	}

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, a)

	paint.FillShape(gtx.Ops, render.ColorCanvas, clip.Rect{Max: gtx.Constraints.Max}.Op())
	a.scene.Frame(gtx, a.cam)
	a.frameGhost(gtx)

	area.Pop()
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

// frameGhost draws the preview line from a placed wire end to the
// cursor while the gesture is still open.
func (a *App) frameGhost(gtx layout.Context) {
	if a.viewport.pendingWire == nil {
		return
	}
	hole := a.doc.Matrix.Hole(*a.viewport.pendingWire)
	if hole == nil {
		return
	}
	x1, y1 := a.cam.WorldToScreen(hole.Pos)
	x2, y2 := a.cam.WorldToScreen(a.viewport.cursor)
	width := 0.25 * board.GridUnit * a.cam.Zoom
	if width < 1.5 {
		width = 1.5
	}
	render.StrokeGhostLine(gtx, x1, y1, x2, y2, width)
}

// pointerAction dispatches a primary click to the active tool.
func (a *App) pointerAction(sx, sy float64, state StateSnapshot) {
	world := a.cam.ScreenToWorld(sx, sy)
	at, ok := a.nearestHole(world)
	if !ok {
		if state.Tool != ToolSelect {
			a.State.SetStatus("No hole near click")
		}
		return
	}

	switch state.Tool {
	case ToolWire:
		a.wireAction(at, state)
	case ToolChip:
		a.chipAction(at, state)
	case ToolDelete:
		a.deleteAction(at)
	case ToolSelect:
		a.selectAction(at)
	}
}

func (a *App) wireAction(at board.Key, state StateSnapshot) {
	if a.viewport.pendingWire == nil {
		from := at
		a.viewport.pendingWire = &from
		a.State.SetStatus(fmt.Sprintf("Wire from %s: pick the other end", at))
		return
	}

	from := *a.viewport.pendingWire
	a.viewport.pendingWire = nil
	id, err := a.doc.PlaceWire("", state.WireColor, from, at)
	if err != nil {
		a.reportPlacement(err)
		return
	}
	a.State.SetDirty(true)
	a.State.SetStatus(fmt.Sprintf("Placed %s %s -> %s", id, from, at))
	a.State.AppendLog(fmt.Sprintf("wire %s: %s -> %s (%s)", id, from, at, state.WireColor))
}

func (a *App) chipAction(at board.Key, state StateSnapshot) {
	if state.ChipType == "" {
		a.State.SetStatus("Pick a chip from the palette first")
		return
	}
	chip, pkg, err := a.lib.Resolve(state.ChipType)
	if err != nil {
		a.State.SetStatus(err.Error())
		return
	}

	id, err := a.doc.PlaceChip("", chip.Name, pkg.PinCount, pkg.ChipWidth, at)
	if err != nil {
		a.reportPlacement(err)
		return
	}
	entity, _ := a.doc.Store.Get(id)
	a.State.SetDirty(true)
	a.State.SetStatus(fmt.Sprintf("Placed %s at %s", entity.Label, at))
	a.State.AppendLog(fmt.Sprintf("chip %s (%s) at %s", id, entity.Label, at))
}

func (a *App) deleteAction(at board.Key) {
	id, ok := a.entityAt(at)
	if !ok {
		a.State.SetStatus("Nothing to delete there")
		return
	}
	a.doc.Remove(id)
	a.State.SetDirty(true)
	a.State.SetStatus("Removed " + id)
	a.State.AppendLog("removed " + id)
}

// selectAction picks up a chip on the first click and drops it at the
// anchor hole of the second.
func (a *App) selectAction(at board.Key) {
	if a.viewport.movingChip == "" {
		id, ok := a.entityAt(at)
		if !ok {
			return
		}
		entity, _ := a.doc.Store.Get(id)
		if entity.Kind != circuit.KindChip {
			return
		}
		a.viewport.movingChip = id
		a.State.SetStatus(fmt.Sprintf("Moving %s: pick the new anchor", entity.Label))
		return
	}

	id := a.viewport.movingChip
	entity, ok := a.doc.Store.Get(id)
	if !ok {
		a.viewport.movingChip = ""
		return
	}
	_, err := a.doc.PlaceChip(id, entity.Type, entity.PinCount, entity.Width, at)
	if err != nil {
		a.reportPlacement(err)
		return
	}
	a.viewport.movingChip = ""
	a.State.SetDirty(true)
	a.State.SetStatus(fmt.Sprintf("Moved %s to %s", entity.Label, at))
	a.State.AppendLog(fmt.Sprintf("moved %s to %s", id, at))
}

// reportPlacement surfaces a placement failure in the status bar and
// ends the open gesture; the document was left untouched, so the next
// click starts a fresh placement.
func (a *App) reportPlacement(err error) {
	a.cancelGesture()
	a.State.SetStatus(err.Error())
}

// nearestHole snaps a world position to the closest hole within
// snapRadius grid units.
func (a *App) nearestHole(pt board.Point) (board.Key, bool) {
	best := board.Key{}
	bestDist := math.Inf(1)
	for key, hole := range a.doc.Matrix {
		dx := hole.Pos.X - pt.X
		dy := hole.Pos.Y - pt.Y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = key
		}
	}
	limit := snapRadius * board.GridUnit
	if bestDist > limit*limit {
		return board.Key{}, false
	}
	return best, true
}

// entityAt returns the id of the entity claiming the given hole.
func (a *App) entityAt(at board.Key) (string, bool) {
	for _, id := range a.doc.Store.IDs() {
		entity, ok := a.doc.Store.Get(id)
		if !ok {
			continue
		}
		for _, claim := range entity.Claims {
			if claim == at {
				return id, true
			}
		}
	}
	return "", false
}
