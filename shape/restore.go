package shape

import "vellum/geometry"

// Config returns a config that reproduces the shape's current state. Used
// to capture node snapshots for history replay and serialization.
func (s *Shape) Config() Config {
	return Config{
		X:         s.x,
		Y:         s.y,
		Width:     s.w,
		Height:    s.h,
		Kind:      s.kind,
		Label:     s.label,
		Tooltip:   s.tooltip,
		Align:     s.align,
		Fill:      s.fill,
		Stroke:    s.stroke,
		MinWidth:  s.minW,
		MinHeight: s.minH,
		MaxWidth:  s.maxW,
		MaxHeight: s.maxH,
		GridStep:  s.gridStep,
	}
}

// Restore recreates a shape from previously captured data, preserving its
// identity and its port ids. cfg.Ports is ignored; the given ports are
// installed verbatim (offsets clamped).
func Restore(id string, cfg Config, ports []Port) *Shape {
	cfg.Ports = nil
	s := New(cfg)
	s.id = id
	for _, p := range ports {
		p.Offset = geometry.Clamp(p.Offset, 0, 1)
		s.ports = append(s.ports, p)
	}
	return s
}
