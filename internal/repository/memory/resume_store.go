// Package memory implements the resume store as a process-lifetime keyed
// mapping. State is owned by the Store value and lost on restart.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go-resume-builder/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	docs   map[string]domain.ResumeDocument
	order  []string
	lastID int64
}

func NewStore() *Store {
	return &Store{
		docs: make(map[string]domain.ResumeDocument),
	}
}

// Create assigns a timestamp-derived identifier and stores the document.
// When two creates land on the same millisecond the id is bumped so rapid
// successive creates never collide.
func (s *Store) Create(_ context.Context, doc *domain.ResumeDocument) (string, *domain.ResumeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	id := strconv.FormatInt(now, 10)

	s.docs[id] = *doc
	s.order = append(s.order, id)

	stored := s.docs[id]
	return id, &stored, nil
}

func (s *Store) GetByID(_ context.Context, id string) (*domain.ResumeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// List returns every stored document in insertion order.
func (s *Store) List(_ context.Context) ([]domain.ResumeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ResumeDocument, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out, nil
}
