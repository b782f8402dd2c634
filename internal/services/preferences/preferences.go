// Package preferences holds user display settings shared by every screen.
package preferences

import "sync"

type Preferences struct {
	DarkMode bool `json:"dark_mode" example:"true"`
}

type Store struct {
	mu        sync.RWMutex
	current   Preferences
	observers map[int]func(Preferences)
	nextID    int
}

func NewStore(initial Preferences) *Store {
	return &Store{
		current:   initial,
		observers: make(map[int]func(Preferences)),
	}
}

func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the preferences and notifies observers when something changed.
func (s *Store) Set(p Preferences) {
	s.mu.Lock()
	if s.current == p {
		s.mu.Unlock()
		return
	}
	s.current = p
	observers := make([]func(Preferences), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(p)
	}
}

func (s *Store) Subscribe(fn func(Preferences)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
