package editor

import (
	"vellum/edge"
	"vellum/event"
	"vellum/geometry"
	"vellum/shape"
)

// CommandKind tags the variants of a replayable command.
type CommandKind int

const (
	CmdAddNode CommandKind = iota
	CmdRemoveNode
	CmdAddLink
	CmdRemoveLink
	CmdMoveNode
	CmdResizeNode
	CmdRetargetLink
)

// nodeState is a full-fidelity snapshot of a shape, carrying only data —
// never live references — so replaying it cannot observe later mutation.
type nodeState struct {
	id    string
	cfg   shape.Config
	ports []shape.Port
}

func captureNode(s *shape.Shape) nodeState {
	ports := make([]shape.Port, len(s.Ports()))
	copy(ports, s.Ports())
	return nodeState{id: s.ID(), cfg: s.Config(), ports: ports}
}

// linkState is the edge counterpart of nodeState.
type linkState struct {
	id      string
	source  edge.Endpoint
	target  edge.Endpoint
	cfg     edge.Config
	bend    geometry.Point
	bendSet bool
}

func captureLink(l *edge.Edge) linkState {
	return linkState{
		id:      l.ID(),
		source:  l.Source(),
		target:  l.Target(),
		cfg:     l.Config(),
		bend:    l.Bend(),
		bendSet: l.BendSet(),
	}
}

// Command is one replayable action, a tagged variant carrying only the
// data needed to apply it.
type Command struct {
	Kind CommandKind

	Node nodeState // AddNode / RemoveNode
	Link linkState // AddLink / RemoveLink

	NodeID   string // MoveNode / ResizeNode
	From, To geometry.Point
	FromSize geometry.Size
	ToSize   geometry.Size

	LinkID string // RetargetLink
	Source edge.Endpoint
	Target edge.Endpoint
}

// Record pairs a forward action with its precise inverse. Commands in each
// direction apply in slice order, so a cascaded removal replays links and
// node in a consistent sequence.
type Record struct {
	Forward []Command
	Inverse []Command
}

// push appends a record to the undo stack and clears the redo stack (the
// standard linear-history invariant). Records are not pushed while history
// itself is being replayed, and the stack is capped by dropping the oldest
// entry.
func (e *Editor) push(rec Record) {
	if e.applying {
		return
	}
	e.undo = append(e.undo, rec)
	e.redo = nil
	if len(e.undo) > e.opts.HistoryLimit {
		e.undo = e.undo[1:]
	}
}

// CanUndo reports whether the undo stack is non-empty.
func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// Undo pops the newest record, applies its inverse and moves it to the
// redo stack. An empty stack is a silent no-op.
func (e *Editor) Undo() {
	if len(e.undo) == 0 {
		return
	}
	rec := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.replay(rec.Inverse)
	e.redo = append(e.redo, rec)
	e.bus.Emit(event.HistoryUndo, rec)
}

// Redo pops the newest undone record, reapplies its forward commands and
// moves it back to the undo stack. An empty stack is a silent no-op.
func (e *Editor) Redo() {
	if len(e.redo) == 0 {
		return
	}
	rec := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.replay(rec.Forward)
	e.undo = append(e.undo, rec)
	e.bus.Emit(event.HistoryRedo, rec)
}

// replay applies a command list without recording new history.
func (e *Editor) replay(cmds []Command) {
	e.applying = true
	defer func() { e.applying = false }()
	for _, cmd := range cmds {
		e.apply(cmd)
	}
}

// apply executes a single command against the live collections. Unknown
// ids are silent no-ops, in keeping with the editor's error policy.
func (e *Editor) apply(cmd Command) {
	switch cmd.Kind {
	case CmdAddNode:
		e.insertNode(shape.Restore(cmd.Node.id, cmd.Node.cfg, cmd.Node.ports))
	case CmdRemoveNode:
		if s, ok := e.nodes[cmd.Node.id]; ok {
			e.removeNodeInternal(s)
		}
	case CmdAddLink:
		st := cmd.Link
		e.insertLink(edge.Restore(st.id, st.source, st.target, st.cfg, st.bend, st.bendSet, e.resolveEndpoint))
	case CmdRemoveLink:
		if l := e.linkByID(cmd.Link.id); l != nil {
			e.removeLinkInternal(l)
		}
	case CmdMoveNode:
		if s, ok := e.nodes[cmd.NodeID]; ok {
			s.SetPosition(cmd.To.X, cmd.To.Y)
		}
	case CmdResizeNode:
		if s, ok := e.nodes[cmd.NodeID]; ok {
			s.SetSize(cmd.ToSize.W, cmd.ToSize.H)
		}
	case CmdRetargetLink:
		if l := e.linkByID(cmd.LinkID); l != nil {
			l.SetEndpoints(cmd.Source, cmd.Target)
		}
	}
}

func (e *Editor) linkByID(id string) *edge.Edge {
	for _, l := range e.links {
		if l.ID() == id {
			return l
		}
	}
	return nil
}
