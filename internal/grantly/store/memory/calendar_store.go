package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/store"
)

// CalendarStore is an in-memory set of restricted days, keyed yyyy-mm-dd.
// Intended for tests and dev environments.
type CalendarStore struct {
	mu   sync.RWMutex
	days map[string]struct{}

	// FailLookups, when set, makes IsRestricted return this error.
	FailLookups error
}

func NewCalendarStore(days []time.Time) *CalendarStore {
	s := &CalendarStore{days: make(map[string]struct{}, len(days))}
	for _, d := range days {
		s.days[store.DayKey(d)] = struct{}{}
	}
	return s
}

func (s *CalendarStore) IsRestricted(_ context.Context, t time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailLookups != nil {
		return false, s.FailLookups
	}
	_, ok := s.days[store.DayKey(t)]
	return ok, nil
}

func (s *CalendarStore) AddDates(_ context.Context, days []time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range days {
		s.days[store.DayKey(d)] = struct{}{}
	}
	return nil
}

func (s *CalendarStore) RemoveDates(_ context.Context, days []time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range days {
		delete(s.days, store.DayKey(d))
	}
	return nil
}

func (s *CalendarStore) ListDates(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}
