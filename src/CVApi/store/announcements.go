package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/campus-voice/campusvoice/src/CVApi/docstore"
	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

// Announcements is the news board: a plain list with no invariants,
// persisted under its own document key.
type Announcements struct {
	mu   sync.RWMutex
	docs docstore.Store
	list []types.Announcement // newest first
}

func LoadAnnouncements(ctx context.Context, docs docstore.Store) (*Announcements, error) {
	s := &Announcements{docs: docs}
	raw, err := docs.Get(ctx, docstore.KeyAnnouncements)
	if err == docstore.ErrNotFound {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.list); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Announcements) List() []types.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Announcement, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Announcements) Create(ctx context.Context, title, body string) (types.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID uint64
	for _, a := range s.list {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	a := types.Announcement{
		ID:        maxID + 1,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	next := append([]types.Announcement{a}, s.list...)
	if err := s.persist(ctx, next); err != nil {
		return types.Announcement{}, err
	}
	s.list = next
	return a, nil
}

func (s *Announcements) Update(ctx context.Context, id uint64, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.list {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	next := make([]types.Announcement, len(s.list))
	copy(next, s.list)
	next[idx].Title = title
	next[idx].Body = body
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.list = next
	return nil
}

func (s *Announcements) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.Announcement, 0, len(s.list))
	found := false
	for _, a := range s.list {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return ErrNotFound
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.list = next
	return nil
}

func (s *Announcements) persist(ctx context.Context, list []types.Announcement) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.docs.Put(ctx, docstore.KeyAnnouncements, raw)
}
