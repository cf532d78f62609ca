package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// ApplicationStore is an in-memory protected resource for tests and dev.
// It enforces the same plain constraints as the sqlite schema: unique
// application id and one application per (student, scholarship) pair.
type ApplicationStore struct {
	mu           sync.RWMutex
	apps         map[string]types.Application // by application id
	students     map[string]types.Student
	scholarships map[string]types.Scholarship
}

func NewApplicationStore() *ApplicationStore {
	return &ApplicationStore{
		apps:         make(map[string]types.Application),
		students:     make(map[string]types.Student),
		scholarships: make(map[string]types.Scholarship),
	}
}

// SeedStudent and SeedScholarship populate the reference tables directly;
// those tables are not subject to the write window.
func (s *ApplicationStore) SeedStudent(st types.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.ID] = st
}

func (s *ApplicationStore) SeedScholarship(sc types.Scholarship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scholarships[sc.ID] = sc
}

func (s *ApplicationStore) Insert(_ context.Context, app types.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; ok {
		return store.ErrDuplicate
	}
	for _, a := range s.apps {
		if a.StudentID == app.StudentID && a.ScholarshipID == app.ScholarshipID {
			return store.ErrDuplicate
		}
	}
	s.apps[app.ID] = app
	return nil
}

func (s *ApplicationStore) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return store.ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = updatedAt
	s.apps[id] = app
	return nil
}

func (s *ApplicationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.apps, id)
	return nil
}

func (s *ApplicationStore) Get(_ context.Context, id string) (types.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return types.Application{}, store.ErrNotFound
	}
	return app, nil
}

func (s *ApplicationStore) EligibleStudents(_ context.Context, scholarshipID string) ([]types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sch, ok := s.scholarships[scholarshipID]
	if !ok {
		return nil, store.ErrNotFound
	}

	applied := make(map[string]struct{})
	for _, a := range s.apps {
		if a.ScholarshipID == scholarshipID {
			applied[a.StudentID] = struct{}{}
		}
	}

	var out []types.Student
	for _, st := range s.students {
		if st.GPA < sch.MinGPA {
			continue
		}
		if _, ok := applied[st.ID]; ok {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GPA != out[j].GPA {
			return out[i].GPA > out[j].GPA
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Count returns the number of stored applications. Test-only helper.
func (s *ApplicationStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.apps)
}
