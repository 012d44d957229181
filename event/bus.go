// Package event implements the typed publish/subscribe bus that wires
// vellum's entities to the editor and the editor to its UI collaborators.
// Subscribers for a kind are invoked in subscription order; every
// subscription returns an explicit unsubscribe func.
package event

// Kind identifies a category of event on a bus.
type Kind string

// Editor-level kinds observed by UI collaborators.
const (
	NodeAdd        Kind = "node:add"
	NodeRemove     Kind = "node:remove"
	NodeSelect     Kind = "node:select"
	LinkAdd        Kind = "link:add"
	LinkRemove     Kind = "link:remove"
	LinkSelect     Kind = "link:select"
	DiagramChanged Kind = "diagram:changed"
	HistoryUndo    Kind = "history:undo"
	HistoryRedo    Kind = "history:redo"
)

// Entity-level kinds emitted by shapes and edges.
const (
	Move          Kind = "move"
	Resize        Kind = "resize"
	DragEnd       Kind = "dragend"
	ResizeEnd     Kind = "resizeend"
	Click         Kind = "click"
	Reconnect     Kind = "reconnect"
	RemoveRequest Kind = "removerequest"
)

// Event carries a kind and an event-specific payload.
type Event struct {
	Kind    Kind
	Payload any
}

// Handler receives published events.
type Handler func(Event)

type subscriber struct {
	id int
	fn Handler
}

// Bus dispatches events to ordered subscriber lists, one list per kind.
// It is not safe for concurrent use; the whole system is single-threaded
// by construction.
type Bus struct {
	subs   map[Kind][]subscriber
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscriber)}
}

// On registers fn for the given kind and returns an unsubscribe func.
// Calling the returned func more than once is harmless.
func (b *Bus) On(kind Kind, fn Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscriber{id: id, fn: fn})
	return func() {
		list := b.subs[kind]
		for i, s := range list {
			if s.id == id {
				b.subs[kind] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Once registers fn to run for the next event of the given kind only.
func (b *Bus) Once(kind Kind, fn Handler) func() {
	var off func()
	off = b.On(kind, func(ev Event) {
		off()
		fn(ev)
	})
	return off
}

// Emit publishes an event to every subscriber of its kind, in
// subscription order. The list is copied first so handlers may
// subscribe or unsubscribe during dispatch.
func (b *Bus) Emit(kind Kind, payload any) {
	list := b.subs[kind]
	if len(list) == 0 {
		return
	}
	snapshot := make([]subscriber, len(list))
	copy(snapshot, list)
	ev := Event{Kind: kind, Payload: payload}
	for _, s := range snapshot {
		s.fn(ev)
	}
}

// SubscriberCount returns the number of subscribers for a kind.
func (b *Bus) SubscriberCount(kind Kind) int {
	return len(b.subs[kind])
}
