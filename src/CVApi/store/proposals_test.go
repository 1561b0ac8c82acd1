package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-voice/campusvoice/src/CVApi/docstore"
	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

// memStore is an in-memory document store; failPuts simulates a broken
// persistence medium.
type memStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	failPuts bool
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.docs[key]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return b, nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPuts {
		return errors.New("disk on fire")
	}
	m.docs[key] = value
	return nil
}

func TestCreate_EmptyBoard(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)

	p, err := s.Create(ctx, "T", "C", "")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), p.ID)
	assert.Equal(t, types.StatusReceived, p.Status)
	assert.Empty(t, p.Endorsements)
	assert.Equal(t, "", p.AdminResponse)
	// Category is never left blank on a persisted proposal.
	assert.Equal(t, types.CategoryOther, p.Category)
}

func TestCreate_IDsAreMonotonic(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)

	first, err := s.Create(ctx, "a", "a", types.CategoryRules)
	require.NoError(t, err)
	second, err := s.Create(ctx, "b", "b", types.CategoryRules)
	require.NoError(t, err)

	assert.Equal(t, first.ID+1, second.ID)

	// Newest first in storage order.
	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestCreate_RoundTripsThroughDocument(t *testing.T) {
	ctx := context.Background()
	docs := newMemStore()

	s, err := LoadProposals(ctx, docs)
	require.NoError(t, err)
	created, err := s.Create(ctx, "T", "C", types.CategoryFacilities)
	require.NoError(t, err)

	reloaded, err := LoadProposals(ctx, docs)
	require.NoError(t, err)
	got, ok := reloaded.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, types.CategoryFacilities, got.Category)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.Endorsements)
	assert.Empty(t, got.Endorsements)
}

func TestSetStatus_UpdatesStatusAndResponse(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, p.ID, types.StatusCoordinating, "in discussion"))

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, types.StatusCoordinating, got.Status)
	assert.Equal(t, "in discussion", got.AdminResponse)

	// Backward moves are allowed; the administrator has full control.
	require.NoError(t, s.SetStatus(ctx, p.ID, types.StatusReceived, ""))
	got, _ = s.Get(p.ID)
	assert.Equal(t, types.StatusReceived, got.Status)
}

func TestSetStatus_UnknownIDIsANoOp(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, 5, types.StatusCoordinating, "in discussion"))

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, types.StatusReceived, got.Status)
	assert.Len(t, s.List(), 1)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetStatus(ctx, p.ID, "ARCHIVED", ""), ErrBadStatus)
	got, _ := s.Get(p.ID)
	assert.Equal(t, types.StatusReceived, got.Status)
}

func TestToggleEndorsement_Involution(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	alice := types.Identity{ID: "alice@example.edu", DisplayName: "Alice", Role: types.RoleMember}

	signedP, signed, err := s.ToggleEndorsement(ctx, p.ID, alice)
	require.NoError(t, err)
	assert.True(t, signed)
	require.Len(t, signedP.Endorsements, 1)
	assert.Equal(t, alice.ID, signedP.Endorsements[0].IdentityID)

	// Signing again removes the endorsement instead of duplicating it.
	unsignedP, signed, err := s.ToggleEndorsement(ctx, p.ID, alice)
	require.NoError(t, err)
	assert.False(t, signed)
	assert.Empty(t, unsignedP.Endorsements)
}

func TestToggleEndorsement_OnePerIdentity(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	_, _, err = s.ToggleEndorsement(ctx, p.ID, types.Identity{ID: "a", DisplayName: "A"})
	require.NoError(t, err)
	_, _, err = s.ToggleEndorsement(ctx, p.ID, types.Identity{ID: "b", DisplayName: "B"})
	require.NoError(t, err)

	got, _ := s.Get(p.ID)
	require.Len(t, got.Endorsements, 2)
	seen := map[string]bool{}
	for _, e := range got.Endorsements {
		assert.False(t, seen[e.IdentityID])
		seen[e.IdentityID] = true
	}
}

func TestToggleEndorsement_RequiresIdentity(t *testing.T) {
	ctx := context.Background()
	s, err := LoadProposals(ctx, newMemStore())
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	_, _, err = s.ToggleEndorsement(ctx, p.ID, types.Identity{})
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, _, err = s.ToggleEndorsement(ctx, 99, types.Identity{ID: "a"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMutations_RevertOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	docs := newMemStore()
	s, err := LoadProposals(ctx, docs)
	require.NoError(t, err)
	p, err := s.Create(ctx, "T", "C", types.CategoryRules)
	require.NoError(t, err)

	docs.failPuts = true

	_, err = s.Create(ctx, "T2", "C2", types.CategoryRules)
	assert.Error(t, err)
	assert.Len(t, s.List(), 1)

	assert.Error(t, s.SetStatus(ctx, p.ID, types.StatusResolved, "done"))
	got, _ := s.Get(p.ID)
	assert.Equal(t, types.StatusReceived, got.Status)

	_, _, err = s.ToggleEndorsement(ctx, p.ID, types.Identity{ID: "a"})
	assert.Error(t, err)
	got, _ = s.Get(p.ID)
	assert.Empty(t, got.Endorsements)
}
