package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/ProtoTraceLab/ProtoBoard/pkg/board"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

type primitiveKind int

const (
	primHole primitiveKind = iota
	primWire
	primChip
)

type primitive struct {
	kind primitiveKind
	hole board.Point
	wire circuit.WireGeometry
	chip circuit.ChipGeometry
}

// Scene is a retained-mode Gio backend for the circuit store. Draw
// calls record primitives keyed by handle; Frame replays them through
// the camera each time the window redraws. All methods must be called
// from the UI event loop.
type Scene struct {
	next   circuit.Handle
	prims  map[circuit.Handle]*primitive
	order  []circuit.Handle
	shaper *text.Shaper
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{
		prims:  make(map[circuit.Handle]*primitive),
		shaper: text.NewShaper(text.WithCollection(gofont.Collection())),
	}
}

func (s *Scene) add(p *primitive) circuit.Handle {
	s.next++
	s.prims[s.next] = p
	s.order = append(s.order, s.next)
	return s.next
}

// DrawHole records one board hole.
func (s *Scene) DrawHole(center board.Point) circuit.Handle {
	return s.add(&primitive{kind: primHole, hole: center})
}

// DrawWire records one wire.
func (s *Scene) DrawWire(geom circuit.WireGeometry) []circuit.Handle {
	return []circuit.Handle{s.add(&primitive{kind: primWire, wire: geom})}
}

// DrawChip records one chip body.
func (s *Scene) DrawChip(geom circuit.ChipGeometry) []circuit.Handle {
	return []circuit.Handle{s.add(&primitive{kind: primChip, chip: geom})}
}

// Delete removes primitives; unknown handles are ignored.
func (s *Scene) Delete(handles []circuit.Handle) {
	for _, h := range handles {
		delete(s.prims, h)
	}
}

// Move translates primitives by a world-coordinate delta.
func (s *Scene) Move(handles []circuit.Handle, dx, dy float64) {
	for _, h := range handles {
		p, ok := s.prims[h]
		if !ok {
			continue
		}
		switch p.kind {
		case primHole:
			p.hole.X += dx
			p.hole.Y += dy
		case primWire:
			p.wire.From.X += dx
			p.wire.From.Y += dy
			p.wire.To.X += dx
			p.wire.To.Y += dy
		case primChip:
			p.chip.Origin.X += dx
			p.chip.Origin.Y += dy
		}
	}
}

// Reset drops every recorded primitive. Used when the document is
// replaced or the board is rebuilt.
func (s *Scene) Reset() {
	s.prims = make(map[circuit.Handle]*primitive)
	s.order = s.order[:0]
}

// Frame replays the scene into the frame ops. Holes render below
// wires, wires below chips, matching placement order within each
// class.
func (s *Scene) Frame(gtx layout.Context, cam *Camera) {
	s.compact()
	for _, kind := range []primitiveKind{primHole, primWire, primChip} {
		for _, h := range s.order {
			p, ok := s.prims[h]
			if !ok || p.kind != kind {
				continue
			}
			switch p.kind {
			case primHole:
				s.frameHole(gtx, cam, p.hole)
			case primWire:
				s.frameWire(gtx, cam, p.wire)
			case primChip:
				s.frameChip(gtx, cam, p.chip)
			}
		}
	}
}

// compact drops deleted handles from the draw order once they
// outnumber the live ones.
func (s *Scene) compact() {
	if len(s.order) < 2*len(s.prims)+16 {
		return
	}
	live := s.order[:0]
	for _, h := range s.order {
		if _, ok := s.prims[h]; ok {
			live = append(live, h)
		}
	}
	s.order = live
}

func (s *Scene) frameHole(gtx layout.Context, cam *Camera, center board.Point) {
	x, y := cam.WorldToScreen(center)
	radius := 0.15 * board.GridUnit * cam.Zoom
	if radius < 1.0 {
		radius = 1.0
	}
	fillCircle(gtx, x, y, radius, ColorHole)
}

func (s *Scene) frameWire(gtx layout.Context, cam *Camera, geom circuit.WireGeometry) {
	x1, y1 := cam.WorldToScreen(geom.From)
	x2, y2 := cam.WorldToScreen(geom.To)

	width := 0.25 * board.GridUnit * cam.Zoom
	if width < 1.5 {
		width = 1.5
	}
	col := WireColor(geom.Color)
	strokeLine(gtx, x1, y1, x2, y2, width, col)

	// Plug ends.
	endRadius := width * 0.8
	fillCircle(gtx, x1, y1, endRadius, col)
	fillCircle(gtx, x2, y2, endRadius, col)
}

func (s *Scene) frameChip(gtx layout.Context, cam *Camera, geom circuit.ChipGeometry) {
	u := board.GridUnit * cam.Zoom
	cols := geom.PinCount / 2
	x, y := cam.WorldToScreen(geom.Origin)

	// Pin stubs under the body, one per footprint hole.
	pinSize := 0.3 * u
	if pinSize < 2.0 {
		pinSize = 2.0
	}
	for i := 0; i < cols; i++ {
		px := x + float64(i)*u
		fillRect(gtx, px, y, pinSize, ColorChipPin)
		fillRect(gtx, px, y+u, pinSize, ColorChipPin)
	}

	// Body spans the footprint columns and overhangs the pin rows by
	// the package width.
	over := (geom.Width - 1.0) / 2.0 * u
	minX := x - 0.35*u
	maxX := x + (float64(cols)-1+0.35)*u
	minY := y - over
	maxY := y + u + over
	fillRRect(gtx, minX, minY, maxX, maxY, 0.2*u, ColorChipBody)

	label := geom.Label
	if label == "" {
		label = geom.Type
	}
	s.frameLabel(gtx, (minX+maxX)/2, (minY+maxY)/2, 0.6*u, label)
}

func (s *Scene) frameLabel(gtx layout.Context, cx, cy, size float64, label string) {
	if label == "" || size < 7.0 {
		return
	}
	if size > 60.0 {
		size = 60.0
	}

	macro := op.Record(gtx.Ops)
	offset := f32.Pt(float32(cx-float64(len(label))*size*0.28), float32(cy-size*0.6))
	stack := op.Affine(f32.Affine2D{}.Offset(offset)).Push(gtx.Ops)

	paint.ColorOp{Color: ColorChipLabel}.Add(gtx.Ops)
	lbl := widget.Label{
		Alignment: text.Start,
		MaxLines:  1,
	}
	lbl.Layout(gtx, s.shaper, font.Font{}, unit.Sp(size), label, op.CallOp{})

	stack.Pop()
	call := macro.Stop()
	call.Add(gtx.Ops)
}

func fillCircle(gtx layout.Context, x, y, radius float64, fillColor color.NRGBA) {
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	defer stack.Pop()

	rect := image.Rectangle{
		Min: image.Pt(int(-radius), int(-radius)),
		Max: image.Pt(int(radius), int(radius)),
	}
	paint.FillShape(gtx.Ops, fillColor, clip.Ellipse(rect).Op(gtx.Ops))
}

func fillRect(gtx layout.Context, cx, cy, size float64, fillColor color.NRGBA) {
	half := size / 2
	rect := clip.Rect{
		Min: image.Pt(int(cx-half), int(cy-half)),
		Max: image.Pt(int(cx+half), int(cy+half)),
	}
	paint.FillShape(gtx.Ops, fillColor, rect.Op())
}

func fillRRect(gtx layout.Context, minX, minY, maxX, maxY, radius float64, fillColor color.NRGBA) {
	rr := int(radius)
	if rr < 1 {
		rr = 1
	}
	rrect := clip.UniformRRect(
		image.Rectangle{
			Min: image.Pt(int(minX), int(minY)),
			Max: image.Pt(int(maxX), int(maxY)),
		},
		rr,
	).Op(gtx.Ops)
	paint.FillShape(gtx.Ops, fillColor, rrect)
}

func strokeLine(gtx layout.Context, x1, y1, x2, y2, width float64, lineColor color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x1), float32(y1)))
	path.LineTo(f32.Pt(float32(x2), float32(y2)))

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()
	paint.FillShape(gtx.Ops, lineColor, stroke)
}

// StrokeGhostLine draws a preview wire from a placed end to the
// cursor while the second end is still unplaced.
func StrokeGhostLine(gtx layout.Context, x1, y1, x2, y2, width float64) {
	strokeLine(gtx, x1, y1, x2, y2, width, ColorGhost)
}

// Bounds returns the world-space extent of all recorded holes. It is
// used to fit the camera after the board is built.
func (s *Scene) Bounds() (min, max board.Point, ok bool) {
	min = board.Point{X: math.Inf(1), Y: math.Inf(1)}
	max = board.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range s.prims {
		if p.kind != primHole {
			continue
		}
		ok = true
		if p.hole.X < min.X {
			min.X = p.hole.X
		}
		if p.hole.Y < min.Y {
			min.Y = p.hole.Y
		}
		if p.hole.X > max.X {
			max.X = p.hole.X
		}
		if p.hole.Y > max.Y {
			max.Y = p.hole.Y
		}
	}
	return min, max, ok
}
