// Package selection holds the two teams a user has picked. It stores raw
// identifiers only; eligibility is decided by consumers.
package selection

import "sync"

// Selection is the current pair of team names. An empty string is an empty slot.
type Selection struct {
	Home string `json:"home" msgpack:"home"`
	Away string `json:"away" msgpack:"away"`
}

// Eligible reports whether a prediction may be requested for the pair.
func (s Selection) Eligible() bool {
	return s.Home != "" && s.Away != "" && s.Home != s.Away
}

// Listener is notified after every mutation with the new value.
type Listener func(Selection)

// Store holds the selection and notifies listeners of every mutation, even
// one that writes the value already held.
type Store struct {
	mu        sync.Mutex
	current   Selection
	listeners []Listener
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the stored selection.
func (s *Store) Current() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetHome stores the home team.
func (s *Store) SetHome(team string) {
	s.update(func(sel *Selection) { sel.Home = team })
}

// SetAway stores the away team.
func (s *Store) SetAway(team string) {
	s.update(func(sel *Selection) { sel.Away = team })
}

// Set stores both teams as a single mutation.
func (s *Store) Set(home, away string) {
	s.update(func(sel *Selection) { sel.Home, sel.Away = home, away })
}

// Clear empties both slots.
func (s *Store) Clear() {
	s.update(func(sel *Selection) { *sel = Selection{} })
}

// OnChange registers a listener. Listeners run synchronously, in registration
// order, on the goroutine that mutated the store.
func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) update(mutate func(*Selection)) {
	s.mu.Lock()
	mutate(&s.current)
	value := s.current
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}
