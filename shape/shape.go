// Package shape implements the positioned, resizable, labeled node entity.
// A shape owns its geometry, its ports and its gesture handling; everything
// derived from position and size (ports, label layout, resize handle) is
// recomputed on every mutation so it can never go stale.
package shape

import (
	"vellum/event"
	"vellum/geometry"

	"github.com/google/uuid"
)

// Kind selects the visual variant of a shape.
type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindCircle  Kind = "circle"
	KindDiamond Kind = "diamond"
)

// Align selects label text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Default geometric limits, used when the config leaves them zero.
const (
	DefaultMinWidth  float32 = 20
	DefaultMinHeight float32 = 20
	DefaultMaxWidth  float32 = 4000
	DefaultMaxHeight float32 = 4000
)

// PortConfig describes a port to create with a shape.
type PortConfig struct {
	Name   string
	Side   Side
	Offset float32
}

// Config describes a shape to create.
type Config struct {
	X, Y          float32
	Width, Height float32
	Kind          Kind
	Label         string
	Tooltip       string
	Align         Align
	Fill          string
	Stroke        string
	MinWidth      float32
	MinHeight     float32
	MaxWidth      float32
	MaxHeight     float32
	GridStep      float32 // 0 disables snapping
	Ports         []PortConfig
}

// DragInfo is the payload of DragEnd and ResizeEnd events, carrying the
// bounds at gesture start and at release.
type DragInfo struct {
	From geometry.Rect
	To   geometry.Rect
}

// Shape is a node in the diagram. Its identity is generated at creation
// and immutable for its lifetime.
type Shape struct {
	id       string
	kind     Kind
	x, y     float32
	w, h     float32
	minW     float32
	minH     float32
	maxW     float32
	maxH     float32
	gridStep float32
	fill     string
	stroke   string
	label    string
	lines    []string
	tooltip  string
	align    Align
	ports    []Port
	bus      *event.Bus
}

// New creates a shape from a config. Size is clamped to the configured
// minimums, the label is wrapped to the resulting width, and every listed
// port is created with a fresh id.
func New(cfg Config) *Shape {
	s := &Shape{
		id:       uuid.NewString(),
		kind:     cfg.Kind,
		minW:     cfg.MinWidth,
		minH:     cfg.MinHeight,
		maxW:     cfg.MaxWidth,
		maxH:     cfg.MaxHeight,
		gridStep: cfg.GridStep,
		fill:     cfg.Fill,
		stroke:   cfg.Stroke,
		label:    cfg.Label,
		tooltip:  cfg.Tooltip,
		align:    cfg.Align,
		bus:      event.NewBus(),
	}
	if s.kind == "" {
		s.kind = KindRect
	}
	if s.minW <= 0 {
		s.minW = DefaultMinWidth
	}
	if s.minH <= 0 {
		s.minH = DefaultMinHeight
	}
	if s.maxW <= 0 {
		s.maxW = DefaultMaxWidth
	}
	if s.maxH <= 0 {
		s.maxH = DefaultMaxHeight
	}
	if s.align == "" {
		s.align = AlignCenter
	}
	s.x = geometry.Snap(cfg.X, s.gridStep)
	s.y = geometry.Snap(cfg.Y, s.gridStep)
	s.w = geometry.Clamp(cfg.Width, s.minW, s.maxW)
	s.h = geometry.Clamp(cfg.Height, s.minH, s.maxH)
	s.lines = wrapLabel(s.label, s.w)
	for _, pc := range cfg.Ports {
		s.AddPort(pc.Name, pc.Side, pc.Offset)
	}
	return s
}

// ID returns the shape's stable unique identifier.
func (s *Shape) ID() string { return s.id }

// Kind returns the visual variant.
func (s *Shape) Kind() Kind { return s.kind }

// Events returns the shape's event bus.
func (s *Shape) Events() *event.Bus { return s.bus }

// Position returns the top-left corner.
func (s *Shape) Position() geometry.Point { return geometry.Point{X: s.x, Y: s.y} }

// Size returns the current extent.
func (s *Shape) Size() geometry.Size { return geometry.Size{W: s.w, H: s.h} }

// Bounds returns the axis-aligned bounding box.
func (s *Shape) Bounds() geometry.Rect { return geometry.Rect{X: s.x, Y: s.y, W: s.w, H: s.h} }

// Label returns the raw label text.
func (s *Shape) Label() string { return s.label }

// Lines returns the word-wrapped label lines for the current width.
func (s *Shape) Lines() []string { return s.lines }

// Tooltip returns the optional tooltip text.
func (s *Shape) Tooltip() string { return s.tooltip }

// Align returns the label alignment.
func (s *Shape) Align() Align { return s.align }

// Fill returns the fill color.
func (s *Shape) Fill() string { return s.fill }

// Stroke returns the stroke color.
func (s *Shape) Stroke() string { return s.stroke }

// GridStep returns the configured snap step (0 when snapping is off).
func (s *Shape) GridStep() float32 { return s.gridStep }

// SetPosition moves the shape to (x, y), snapped to the grid step when one
// is configured, and emits a Move event carrying the new bounds. Ports,
// label layout and the resize handle all derive from Bounds, so they are
// consistent the moment this returns.
func (s *Shape) SetPosition(x, y float32) {
	s.x = geometry.Snap(x, s.gridStep)
	s.y = geometry.Snap(y, s.gridStep)
	s.bus.Emit(event.Move, s.Bounds())
}

// SetSize resizes the shape, clamping each dimension to its configured
// range, re-wraps the label for the new width, and emits a Resize event
// carrying the new bounds.
func (s *Shape) SetSize(w, h float32) {
	s.w = geometry.Clamp(w, s.minW, s.maxW)
	s.h = geometry.Clamp(h, s.minH, s.maxH)
	s.lines = wrapLabel(s.label, s.w)
	s.bus.Emit(event.Resize, s.Bounds())
}

// SetLabel replaces the label text and re-wraps it to the current width.
func (s *Shape) SetLabel(text string) {
	s.label = text
	s.lines = wrapLabel(text, s.w)
}

// HandlePoint returns the position of the bottom-right resize handle,
// derived from the current bounds.
func (s *Shape) HandlePoint() geometry.Point {
	return geometry.Point{X: s.x + s.w, Y: s.y + s.h}
}
