// Package terminal is an interactive tcell front-end for the editor core.
// It is a UI collaborator in the editor's sense: it translates terminal
// mouse and key events into editor pointer events and method calls, and
// renders a coarse cell projection of the document. All document logic
// stays in the editor.
package terminal

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"vellum/editor"
	"vellum/event"
	"vellum/geometry"
)

// doubleClickWindow is how close together two clicks must be to count as
// a double click.
const doubleClickWindow = 400 * time.Millisecond

// App runs one interactive session over an editor.
type App struct {
	screen   tcell.Screen
	ed       *editor.Editor
	filename string
	message  string

	buttonDown bool
	lastClick  time.Time
	lastCellX  int
	lastCellY  int
}

// Run opens the terminal UI for the given editor. Changes are saved to
// filename with the 's' key.
func Run(ed *editor.Editor, filename string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := &App{screen: screen, ed: ed, filename: filename}

	// Any structural change redraws on the next loop pass; the
	// subscription also demonstrates the collaborator boundary.
	off := ed.Events().On(event.DiagramChanged, func(ev event.Event) {
		if info, ok := ev.Payload.(editor.ChangeInfo); ok {
			app.message = info.Kind
		}
	})
	defer off()

	return app.loop()
}

func (a *App) loop() error {
	for {
		a.render()
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if done, err := a.handleKey(ev); done {
				return err
			}
		case *tcell.EventMouse:
			a.handleMouse(ev)
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) (bool, error) {
	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
		return true, nil
	case ev.Rune() == 'u':
		a.ed.Undo()
	case ev.Rune() == 'r':
		a.ed.Redo()
	case ev.Rune() == 's':
		a.save()
	case ev.Rune() == 'y':
		a.copyToClipboard()
	case ev.Key() == tcell.KeyLeft:
		a.panBy(-0.1, 0)
	case ev.Key() == tcell.KeyRight:
		a.panBy(0.1, 0)
	case ev.Key() == tcell.KeyUp:
		a.panBy(0, -0.1)
	case ev.Key() == tcell.KeyDown:
		a.panBy(0, 0.1)
	}
	return false, nil
}

func (a *App) panBy(fx, fy float32) {
	v := a.ed.Viewport()
	v.Pan(v.W*fx, v.H*fy)
	a.ed.SetViewport(v)
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := a.toDocument(x, y)
	mods := editor.Modifiers{
		Append: ev.Modifiers()&tcell.ModShift != 0,
		Lasso:  ev.Modifiers()&tcell.ModAlt != 0,
		Pan:    ev.Modifiers()&tcell.ModCtrl != 0,
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		a.ed.Zoom(p, true)
	case ev.Buttons()&tcell.WheelDown != 0:
		a.ed.Zoom(p, false)
	case ev.Buttons()&tcell.Button1 != 0:
		if !a.buttonDown {
			a.buttonDown = true
			if a.isDoubleClick(x, y) {
				a.ed.DoubleClick(p)
				return
			}
			a.ed.PointerDown(p, mods)
		} else {
			a.ed.PointerMove(p)
		}
	default:
		if a.buttonDown {
			a.buttonDown = false
			a.ed.PointerUp(p)
		}
	}
}

func (a *App) isDoubleClick(x, y int) bool {
	now := time.Now()
	double := now.Sub(a.lastClick) < doubleClickWindow && x == a.lastCellX && y == a.lastCellY
	a.lastClick = now
	a.lastCellX = x
	a.lastCellY = y
	return double
}

func (a *App) save() {
	if a.filename == "" {
		a.message = "no filename"
		return
	}
	data, err := a.ed.ExportJSON()
	if err != nil {
		a.message = err.Error()
		return
	}
	if err := os.WriteFile(a.filename, data, 0644); err != nil {
		a.message = err.Error()
		return
	}
	a.message = "saved " + a.filename
}

func (a *App) copyToClipboard() {
	data, err := a.ed.ExportJSON()
	if err != nil {
		a.message = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		a.message = err.Error()
		return
	}
	a.message = "copied JSON to clipboard"
}

// toDocument converts a cell coordinate to document space through the
// current viewport. The status line is excluded from the projection.
func (a *App) toDocument(x, y int) geometry.Point {
	w, h := a.canvasSize()
	return a.ed.Viewport().ToDocument(
		geometry.Point{X: float32(x), Y: float32(y)},
		float32(w), float32(h))
}

func (a *App) toScreen(p geometry.Point) (int, int) {
	w, h := a.canvasSize()
	sp := a.ed.Viewport().ToScreen(p, float32(w), float32(h))
	return int(sp.X), int(sp.Y)
}

func (a *App) canvasSize() (int, int) {
	w, h := a.screen.Size()
	if h > 1 {
		h-- // status line
	}
	return w, h
}
