package lattice

// Signal is a zero-argument change notification. Subscribers run
// synchronously, in subscription order, after the mutation has completed.
// The zero value is ready to use.
type Signal struct {
	nextID uint64
	subs   []subscriber
}

type subscriber struct {
	id uint64
	fn func()
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (s *Signal) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() { s.remove(id) }
}

func (s *Signal) remove(id uint64) {
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Emit notifies every current subscriber. Subscribers added or removed while
// Emit is running take effect from the next Emit.
func (s *Signal) Emit() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := make([]subscriber, len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		sub.fn()
	}
}

// Len returns the number of subscribers.
func (s *Signal) Len() int {
	return len(s.subs)
}
