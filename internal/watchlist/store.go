// Package watchlist maintains the user's persisted set of watched cities.
package watchlist

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store holds a deduplicated, insertion-ordered set of city names backed by a
// JSON file. The in-memory set is authoritative for the running process: the
// file is read once at open and rewritten wholesale (atomic replace) on every
// successful mutation, and a failed write never rolls a mutation back.
type Store struct {
	mu     sync.RWMutex
	path   string
	cities []string
	log    *logrus.Entry
}

// Open creates a Store backed by the file at path. A missing or corrupt file
// yields an empty watchlist, never an error.
func Open(path string, log *logrus.Logger) *Store {
	s := &Store{
		path: path,
		log:  log.WithField("component", "watchlist"),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).Warn("could not read watchlist file; starting empty")
		}
		return
	}

	var cities []string
	if err := json.Unmarshal(data, &cities); err != nil {
		s.log.WithError(err).Warn("corrupt watchlist file; starting empty")
		return
	}

	// Dedupe defensively in case the file was edited by hand.
	seen := make(map[string]struct{}, len(cities))
	for _, city := range cities {
		if city == "" {
			continue
		}
		if _, ok := seen[city]; ok {
			continue
		}
		seen[city] = struct{}{}
		s.cities = append(s.cities, city)
	}
}

// Add appends a city to the watchlist and persists the full set. It returns
// false, without persisting, when the name is blank or already present.
func (s *Store) Add(city string) bool {
	city = strings.TrimSpace(city)
	if city == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(city) >= 0 {
		return false
	}

	s.cities = append(s.cities, city)
	s.persist()
	return true
}

// Remove deletes a city from the watchlist and persists the full set. It is
// a no-op when the city is not present.
func (s *Store) Remove(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(city)
	if i < 0 {
		return
	}

	s.cities = append(s.cities[:i], s.cities[i+1:]...)
	s.persist()
}

// Contains reports whether a city is on the watchlist.
func (s *Store) Contains(city string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index(city) >= 0
}

// List returns the watched cities in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.cities))
	copy(out, s.cities)
	return out
}

func (s *Store) index(city string) int {
	for i, c := range s.cities {
		if c == city {
			return i
		}
	}
	return -1
}

// persist writes the whole set to a temporary file and renames it over the
// backing file. Failures are logged; the in-memory set stays authoritative.
// Callers must hold the write lock.
func (s *Store) persist() {
	data, err := json.Marshal(s.cities)
	if err != nil {
		s.log.WithError(err).Error("could not encode watchlist")
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.WithError(err).Error("could not write watchlist file")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.WithError(err).Error("could not replace watchlist file")
	}
}
