package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/ProtoTraceLab/ProtoBoard/internal/ui/render"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/chiplib"
	"github.com/ProtoTraceLab/ProtoBoard/pkg/circuit"
)

type toolEntry struct {
	tool  Tool
	name  string
	icon  *widget.Icon
	click widget.Clickable
}

// App drives the Gio-based breadboard editor.
type App struct {
	Window *app.Window
	State  *AppState

	gvTheme *theme.Theme
	ops     op.Ops

	doc   *circuit.Document
	scene *render.Scene
	cam   *render.Camera
	lib   *chiplib.Library

	toolEntries []toolEntry

	chipList   layout.List
	chipClicks map[string]*widget.Clickable

	colorMenu    *menu.DropdownMenu
	colorMenuBtn widget.Clickable
	saveBtn      widget.Clickable

	viewport viewportState
}

// New wires the window, theme, document, and shared state together.
func New(window *app.Window, state *AppState, lib *chiplib.Library, size circuit.BoardSize) (*App, error) {
	if state == nil {
		state = NewState()
	}
	state.SetBoardSize(size)

	scene := render.NewScene()
	doc, err := circuit.NewDocument(scene, size)
	if err != nil {
		return nil, err
	}
	if err := doc.RedrawBoard(scene); err != nil {
		return nil, err
	}

	window.Option(app.Title("ProtoBoard"), app.Size(unit.Dp(1280), unit.Dp(820)))

	a := &App{
		Window:     window,
		State:      state,
		gvTheme:    theme.NewTheme("", nil, false),
		doc:        doc,
		scene:      scene,
		cam:        render.NewCamera(1280, 820),
		lib:        lib,
		chipList:   layout.List{Axis: layout.Vertical},
		chipClicks: make(map[string]*widget.Clickable),
	}
	a.initTools()
	a.colorMenu = a.buildColorMenu()
	return a, nil
}

// Document exposes the open document, mainly for loading a circuit
// before the event loop starts.
func (a *App) Document() *circuit.Document { return a.doc }

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	for {
		e := a.Window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) initTools() {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			log.Printf("ui: failed to load %s icon: %v", name, err)
			return nil
		}
		return icon
	}
	a.toolEntries = []toolEntry{
		{tool: ToolSelect, name: "Select", icon: makeIcon(icons.ActionTouchApp, "select")},
		{tool: ToolWire, name: "Wire", icon: makeIcon(icons.ActionTimeline, "wire")},
		{tool: ToolChip, name: "Chip", icon: makeIcon(icons.HardwareMemory, "chip")},
		{tool: ToolDelete, name: "Delete", icon: makeIcon(icons.ActionDelete, "delete")},
	}
}

func (a *App) buildColorMenu() *menu.DropdownMenu {
	names := render.WireColorNames()
	opts := make([]menu.MenuOption, 0, len(names))
	for _, name := range names {
		colorName := name
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.State.SetWireColor(colorName)
				a.invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, colorName)
				if colorName == a.State.WireColor() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(160)
	return drop
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	state := a.State.Snapshot()

	paint.FillShape(gtx.Ops, color.NRGBA{R: 238, G: 241, B: 251, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					width := gtx.Dp(unit.Dp(96))
					gtx.Constraints.Min.X = width
					gtx.Constraints.Max.X = width
					return a.layoutToolRail(gtx, state)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.layoutViewport(gtx, state)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					width := gtx.Dp(unit.Dp(220))
					gtx.Constraints.Min.X = width
					gtx.Constraints.Max.X = width
					return a.layoutPalette(gtx, state)
				}),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutStatus(gtx, state)
		}),
	)
}

func (a *App) layoutToolRail(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 45, G: 50, B: 68, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(16), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				children := make([]layout.FlexChild, 0, len(a.toolEntries)*2)
				for i := range a.toolEntries {
					entry := &a.toolEntries[i]
					children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return a.layoutToolEntry(gtx, entry, state.Tool)
					}))
					children = append(children, layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout))
				}
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
			})
		}),
	)
}

func (a *App) layoutToolEntry(gtx layout.Context, entry *toolEntry, active Tool) layout.Dimensions {
	for entry.click.Clicked(gtx) {
		a.State.SetTool(entry.tool)
		a.cancelGesture()
		a.invalidate()
	}

	width := gtx.Constraints.Max.X
	height := gtx.Dp(unit.Dp(64))
	size := image.Pt(width, height)
	gtx.Constraints.Min = size
	gtx.Constraints.Max = size

	bg := color.NRGBA{R: 45, G: 50, B: 68, A: 255}
	if entry.click.Hovered() {
		bg = color.NRGBA{R: 60, G: 66, B: 88, A: 255}
	}
	if entry.tool == active {
		bg = color.NRGBA{R: 80, G: 120, B: 255, A: 255}
	}
	fg := color.NRGBA{R: 240, G: 244, B: 255, A: 255}

	return entry.click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(unit.Dp(8))
				paint.FillShape(gtx.Ops, bg, clip.RRect{
					Rect: image.Rectangle{Max: size},
					NW:   rr, NE: rr, SW: rr, SE: rr,
				}.Op(gtx.Ops))
				return layout.Dimensions{Size: size}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							iconSize := gtx.Dp(unit.Dp(24))
							gtx.Constraints.Min = image.Pt(iconSize, iconSize)
							gtx.Constraints.Max = gtx.Constraints.Min
							if entry.icon != nil {
								return entry.icon.Layout(gtx, fg)
							}
							return layout.Dimensions{Size: gtx.Constraints.Min}
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							lbl := material.Caption(a.gvTheme.Theme, entry.name)
							lbl.Color = fg
							lbl.Alignment = text.Middle
							return lbl.Layout(gtx)
						}),
					)
				})
			}),
		)
	})
}

func (a *App) layoutPalette(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	chips := a.lib.Chips()
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 238, G: 240, B: 247, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(material.H6(a.gvTheme.Theme, "Chips").Layout),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						if len(chips) == 0 {
							return material.Body2(a.gvTheme.Theme, "No chip library loaded.").Layout(gtx)
						}
						return a.chipList.Layout(gtx, len(chips), func(gtx layout.Context, idx int) layout.Dimensions {
							chip := chips[idx]
							clk := a.chipClickable(chip.Name)
							btn := material.Button(a.gvTheme.Theme, clk, chip.Name)
							btn.Inset = layout.UniformInset(unit.Dp(6))
							if chip.Name == state.ChipType {
								btn.Background = color.NRGBA{R: 80, G: 120, B: 255, A: 255}
							} else {
								btn.Background = color.NRGBA{R: 60, G: 64, B: 76, A: 255}
							}
							dims := layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, btn.Layout)
							for clk.Clicked(gtx) {
								a.State.SetChipType(chip.Name)
								a.State.SetTool(ToolChip)
								a.invalidate()
							}
							return dims
						})
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						if a.colorMenuBtn.Clicked(gtx) {
							a.colorMenu.ToggleVisibility(gtx)
						}
						dims := material.Button(a.gvTheme.Theme, &a.colorMenuBtn, "Wire: "+state.WireColor).Layout(gtx)
						a.colorMenu.Layout(gtx, a.gvTheme)
						return dims
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						for a.saveBtn.Clicked(gtx) {
							a.SaveCircuit()
						}
						label := "Save"
						if state.Dirty {
							label = "Save *"
						}
						return material.Button(a.gvTheme.Theme, &a.saveBtn, label).Layout(gtx)
					}),
				)
			})
		}),
	)
}

func (a *App) layoutStatus(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	boardLabel := "Board: 830"
	if state.BoardSize == circuit.Board1260 {
		boardLabel = "Board: 1260"
	}
	fileLabel := "File: unsaved"
	if state.FilePath != "" {
		fileLabel = "File: " + state.FilePath
		if state.Dirty {
			fileLabel += " *"
		}
	}
	toolLabel := fmt.Sprintf("Tool: %s", state.Tool)

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 230, G: 234, B: 244, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(8), Bottom: unit.Dp(8)}
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(material.Body2(a.gvTheme.Theme, boardLabel).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
					layout.Rigid(material.Body2(a.gvTheme.Theme, toolLabel).Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
					layout.Rigid(material.Body2(a.gvTheme.Theme, fileLabel).Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{}
					}),
					layout.Rigid(material.Body2(a.gvTheme.Theme, state.Status).Layout),
				)
			})
		}),
	)
}

func (a *App) chipClickable(name string) *widget.Clickable {
	if clk, ok := a.chipClicks[name]; ok {
		return clk
	}
	clk := &widget.Clickable{}
	a.chipClicks[name] = clk
	return clk
}

// SaveCircuit writes the open document back to its file path.
func (a *App) SaveCircuit() {
	path := a.State.FilePath()
	if path == "" {
		path = "circuit.json"
		a.State.SetFilePath(path)
	}
	f, err := os.Create(path)
	if err != nil {
		a.State.SetStatus(fmt.Sprintf("Save failed: %v", err))
		a.invalidate()
		return
	}
	defer f.Close()
	if err := a.doc.Save(f); err != nil {
		a.State.SetStatus(fmt.Sprintf("Save failed: %v", err))
	} else {
		a.State.SetDirty(false)
		a.State.SetStatus("Saved " + path)
		a.State.AppendLog("Saved " + path)
	}
	a.invalidate()
}

// LoadCircuit replays a saved circuit into the open document.
func (a *App) LoadCircuit(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := a.doc.Load(f); err != nil {
		return err
	}
	a.State.SetFilePath(path)
	a.State.SetDirty(false)
	a.State.SetStatus("Loaded " + path)
	return nil
}

// invalidate requests a new frame.
func (a *App) invalidate() {
	if a.Window != nil {
		a.Window.Invalidate()
	}
}
