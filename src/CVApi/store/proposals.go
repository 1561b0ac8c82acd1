package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/campus-voice/campusvoice/src/CVApi/docstore"
	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

var (
	// ErrAuthRequired is returned when an endorsement is attempted
	// without an authenticated identity.
	ErrAuthRequired = errors.New("store: authentication required")

	// ErrNotFound is returned when an operation names an unknown proposal
	// and the contract does not tolerate a stale id.
	ErrNotFound = errors.New("store: proposal not found")

	// ErrBadStatus is returned for a status outside the defined workflow
	// values.
	ErrBadStatus = errors.New("store: unknown status")
)

// Proposals owns the proposal collection. Every mutation replaces the
// whole persisted document; when the write fails the in-memory state is
// left untouched and the error returned, so readers never run ahead of
// what was persisted.
type Proposals struct {
	mu   sync.RWMutex
	docs docstore.Store
	list []types.Proposal // newest first
}

// LoadProposals reads the collection document, treating a missing
// document as an empty board.
func LoadProposals(ctx context.Context, docs docstore.Store) (*Proposals, error) {
	s := &Proposals{docs: docs}
	raw, err := docs.Get(ctx, docstore.KeyProposals)
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

// List returns a snapshot copy, newest first.
func (s *Proposals) List() []types.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Proposal, len(s.list))
	copy(out, s.list)
	return out
}

// Get returns the proposal with the given id.
func (s *Proposals) Get(id uint64) (types.Proposal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.list {
		if p.ID == id {
			return p, true
		}
	}
	return types.Proposal{}, false
}

// Create assigns the next id (max existing + 1, or 1 on an empty board),
// prepends the proposal and persists the collection.
func (s *Proposals) Create(ctx context.Context, title, content, category string) (types.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID uint64
	for _, p := range s.list {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	if category == "" {
		category = types.CategoryOther
	}

	p := types.Proposal{
		ID:            maxID + 1,
		Title:         title,
		Content:       content,
		Category:      category,
		Status:        types.StatusReceived,
		AdminResponse: "",
		CreatedAt:     time.Now().UTC(),
		Endorsements:  []types.Endorsement{},
	}

	next := make([]types.Proposal, 0, len(s.list)+1)
	next = append(next, p)
	next = append(next, s.list...)
	if err := s.persist(ctx, next); err != nil {
		return types.Proposal{}, err
	}
	s.list = next
	return p, nil
}

// SetStatus replaces status and administrator response. An unknown id is
// tolerated as a no-op; the admin view may hold a stale id.
func (s *Proposals) SetStatus(ctx context.Context, id uint64, status, response string) error {
	if !types.ValidStatus(status) {
		return ErrBadStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.list {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	next := make([]types.Proposal, len(s.list))
	copy(next, s.list)
	next[idx].Status = status
	next[idx].AdminResponse = response
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.list = next
	return nil
}

// ToggleEndorsement signs the proposal for the identity, or removes the
// existing signature when one is present. Returns the updated proposal
// and whether it is now signed.
func (s *Proposals) ToggleEndorsement(ctx context.Context, id uint64, who types.Identity) (types.Proposal, bool, error) {
	if who.ID == "" {
		return types.Proposal{}, false, ErrAuthRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.list {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return types.Proposal{}, false, ErrNotFound
	}

	next := make([]types.Proposal, len(s.list))
	copy(next, s.list)

	old := next[idx].Endorsements
	kept := make([]types.Endorsement, 0, len(old)+1)
	signed := true
	for _, e := range old {
		if e.IdentityID == who.ID {
			signed = false
			continue
		}
		kept = append(kept, e)
	}
	if signed {
		kept = append(kept, types.Endorsement{
			IdentityID:  who.ID,
			DisplayName: who.DisplayName,
			SignedAt:    time.Now().UTC(),
		})
	}
	next[idx].Endorsements = kept

	if err := s.persist(ctx, next); err != nil {
		return types.Proposal{}, false, err
	}
	s.list = next
	return next[idx], signed, nil
}

func (s *Proposals) persist(ctx context.Context, list []types.Proposal) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.docs.Put(ctx, docstore.KeyProposals, raw)
}
