package editor

import (
	"encoding/json"

	"vellum/edge"
	"vellum/event"
	"vellum/shape"
)

// Document is the durable JSON layout and the round-trip contract of
// ExportJSON and Load. Node and port data round-trip exactly; links keep
// only their resolved node ids (null for a free endpoint) and lose
// per-edge styling — a documented limitation of the minimal snapshot, not
// a bug.
type Document struct {
	Nodes []DocumentNode `json:"nodes"`
	Links []DocumentLink `json:"links"`
}

// DocumentNode is the serialized form of a shape.
type DocumentNode struct {
	ID     string         `json:"id"`
	X      float32        `json:"x"`
	Y      float32        `json:"y"`
	Width  float32        `json:"width"`
	Height float32        `json:"height"`
	Label  string         `json:"label"`
	Ports  []DocumentPort `json:"ports"`
}

// DocumentPort is the serialized form of a port.
type DocumentPort struct {
	ID     string  `json:"id"`
	Side   string  `json:"side"`
	Offset float32 `json:"offset"`
}

// DocumentLink is the serialized form of an edge: resolved source/target
// node ids, or null when an endpoint is a free point.
type DocumentLink struct {
	Source *string `json:"source"`
	Target *string `json:"target"`
}

// Snapshot produces the structural snapshot of the current document,
// nodes in insertion order.
func (e *Editor) Snapshot() Document {
	doc := Document{Nodes: []DocumentNode{}, Links: []DocumentLink{}}
	for _, id := range e.order {
		s := e.nodes[id]
		n := DocumentNode{
			ID:     s.ID(),
			X:      s.Position().X,
			Y:      s.Position().Y,
			Width:  s.Size().W,
			Height: s.Size().H,
			Label:  s.Label(),
			Ports:  []DocumentPort{},
		}
		for _, p := range s.Ports() {
			n.Ports = append(n.Ports, DocumentPort{ID: p.ID, Side: string(p.Side), Offset: p.Offset})
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, l := range e.links {
		doc.Links = append(doc.Links, DocumentLink{
			Source: endpointNodeID(l.Source()),
			Target: endpointNodeID(l.Target()),
		})
	}
	return doc
}

func endpointNodeID(ep edge.Endpoint) *string {
	if ref, ok := ep.(edge.PortRef); ok {
		id := ref.ShapeID
		return &id
	}
	return nil
}

// ExportJSON marshals the snapshot. It is the exact inverse of Load for
// node and port data.
func (e *Editor) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e.Snapshot(), "", "  ")
}

// Load replaces the current document with a prior export. Links whose
// referenced nodes are missing or malformed are skipped individually; the
// rest of the load proceeds. Loading resets history and selection.
func (e *Editor) Load(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	e.LoadDocument(doc)
	return nil
}

// LoadDocument reconstructs nodes then links from a snapshot.
func (e *Editor) LoadDocument(doc Document) {
	e.Clear()
	for _, n := range doc.Nodes {
		if n.ID == "" {
			continue
		}
		if _, dup := e.nodes[n.ID]; dup {
			continue
		}
		cfg := shape.Config{
			X: n.X, Y: n.Y,
			Width: n.Width, Height: n.Height,
			Label:     n.Label,
			MinWidth:  e.opts.MinNodeWidth,
			MinHeight: e.opts.MinNodeHeight,
			GridStep:  e.opts.GridStep,
		}
		ports := make([]shape.Port, 0, len(n.Ports))
		for _, p := range n.Ports {
			ports = append(ports, shape.Port{ID: p.ID, Side: shape.Side(p.Side), Offset: p.Offset})
		}
		e.insertNode(shape.Restore(n.ID, cfg, ports))
	}
	for _, l := range doc.Links {
		source, ok := e.loadEndpoint(l.Source)
		if !ok {
			continue
		}
		target, ok := e.loadEndpoint(l.Target)
		if !ok {
			continue
		}
		e.insertLink(edge.New(source, target, edge.Config{CurveFactor: e.opts.CurveFactor}, e.resolveEndpoint))
	}
	e.bus.Emit(event.DiagramChanged, ChangeInfo{Kind: "load"})
}

// loadEndpoint resolves a serialized link endpoint: a known node id binds
// to the node's first port. A nil id or a node that cannot be resolved
// marks the link malformed and it is skipped.
func (e *Editor) loadEndpoint(id *string) (edge.Endpoint, bool) {
	if id == nil {
		return nil, false
	}
	s, ok := e.nodes[*id]
	if !ok {
		return nil, false
	}
	ports := s.Ports()
	if len(ports) == 0 {
		return nil, false
	}
	return edge.PortRef{ShapeID: s.ID(), PortID: ports[0].ID}, true
}
