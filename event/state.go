package event

// State is a shallow key/value container with change notification. The
// editor publishes read-only snapshot values (counts, bounds) into it so
// collaborators can watch derived state without touching the document.
type State struct {
	values   map[string]any
	watchers map[string][]subscriber
	nextID   int
}

// NewState creates an empty state container.
func NewState() *State {
	return &State{
		values:   make(map[string]any),
		watchers: make(map[string][]subscriber),
	}
}

// Get returns the value stored under key, or nil.
func (s *State) Get(key string) any {
	return s.values[key]
}

// Set stores a value and notifies watchers of that key. Watchers receive
// an Event whose Kind is the key and whose Payload is the new value.
func (s *State) Set(key string, value any) {
	s.values[key] = value
	list := s.watchers[key]
	if len(list) == 0 {
		return
	}
	snapshot := make([]subscriber, len(list))
	copy(snapshot, list)
	ev := Event{Kind: Kind(key), Payload: value}
	for _, w := range snapshot {
		w.fn(ev)
	}
}

// Watch registers fn to run whenever key is set. Returns an unsubscribe
// func.
func (s *State) Watch(key string, fn Handler) func() {
	s.nextID++
	id := s.nextID
	s.watchers[key] = append(s.watchers[key], subscriber{id: id, fn: fn})
	return func() {
		list := s.watchers[key]
		for i, w := range list {
			if w.id == id {
				s.watchers[key] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}
