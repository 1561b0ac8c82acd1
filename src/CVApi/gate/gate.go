package gate

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/campus-voice/campusvoice/src/CVApi/store"
	"github.com/campus-voice/campusvoice/src/CVApi/types"
)

var (
	// ErrNoDraft is returned when the identity has no draft in progress.
	ErrNoDraft = errors.New("gate: no draft in progress")

	// ErrValidation is returned by Check when title or content is empty;
	// no external call is made.
	ErrValidation = errors.New("gate: title and content are required")

	// ErrCheckInFlight is returned while a check for the same draft is
	// still running.
	ErrCheckInFlight = errors.New("gate: check already in flight")

	// ErrNotApproved is returned by Submit unless the draft holds an
	// approving verdict bound to its current text.
	ErrNotApproved = errors.New("gate: draft has no valid approved verdict")
)

// Classifier is the moderation dependency. The returned verdict is always
// usable (fail-closed).
type Classifier interface {
	Classify(ctx context.Context, title, content string) types.ModerationVerdict
}

// Gate owns one in-flight draft per identity and decides when a draft may
// become a proposal. A held verdict is only honored while it is bound to
// the draft's exact (title, content) pair; any edit makes it stale, which
// also covers the race between an async verdict arriving and an edit.
type Gate struct {
	mu     sync.Mutex
	mod    Classifier
	board  *store.Proposals
	drafts map[string]*types.Draft // keyed by identity id
}

func New(mod Classifier, board *store.Proposals) *Gate {
	return &Gate{mod: mod, board: board, drafts: make(map[string]*types.Draft)}
}

// Draft returns a snapshot of the identity's current draft.
func (g *Gate) Draft(identityID string) (types.Draft, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	d, ok := g.drafts[identityID]
	if !ok {
		return types.Draft{}, false
	}
	return *d, true
}

// Update edits the draft, creating one when absent. Any change clears the
// held verdict and returns the draft to composing.
func (g *Gate) Update(identityID, title, content, category string) types.Draft {
	g.mu.Lock()
	defer g.mu.Unlock()

	d, ok := g.drafts[identityID]
	if !ok {
		d = &types.Draft{ID: uuid.NewString(), State: types.DraftComposing}
		g.drafts[identityID] = d
	}
	if d.Title != title || d.Content != content || d.Category != category {
		d.State = types.DraftComposing
		d.Verdict = nil
	}
	d.Title = title
	d.Content = content
	d.Category = category
	return *d
}

// Check runs the moderation call for the draft. At most one check per
// draft is in flight; the second caller gets ErrCheckInFlight. The verdict
// is accepted only if the draft text is still the pair the check was
// issued for.
func (g *Gate) Check(ctx context.Context, identityID string) (types.Draft, error) {
	g.mu.Lock()
	d, ok := g.drafts[identityID]
	if !ok {
		g.mu.Unlock()
		return types.Draft{}, ErrNoDraft
	}
	if d.Title == "" || d.Content == "" {
		g.mu.Unlock()
		return types.Draft{}, ErrValidation
	}
	if d.State == types.DraftChecking {
		g.mu.Unlock()
		return types.Draft{}, ErrCheckInFlight
	}
	d.State = types.DraftChecking
	draftID, title, content := d.ID, d.Title, d.Content
	g.mu.Unlock()

	// The only suspending call in the system; the gate lock is not held
	// across it so unrelated drafts stay usable.
	verdict := g.mod.Classify(ctx, title, content)

	g.mu.Lock()
	defer g.mu.Unlock()

	d, ok = g.drafts[identityID]
	if !ok || d.ID != draftID {
		return types.Draft{}, ErrNoDraft
	}
	if !verdict.Binds(d.Title, d.Content) {
		// Edited while the check was running; the verdict is stale and
		// the draft already went back to composing.
		log.Printf("gate: discarding stale verdict for draft %s", draftID)
		return *d, nil
	}

	if verdict.Approved {
		if verdict.RefinedTitle != "" {
			d.Title = verdict.RefinedTitle
		}
		if verdict.RefinedContent != "" {
			d.Content = verdict.RefinedContent
		}
		d.Category = verdict.Category
		// Rebind to the text the user will actually submit.
		verdict.BoundTitle = d.Title
		verdict.BoundContent = d.Content
		d.State = types.DraftApproved
	} else {
		d.State = types.DraftRejected
	}
	d.Verdict = &verdict
	return *d, nil
}

// Submit turns an approved draft into a persisted proposal and discards
// the draft. Legal only with an approving verdict bound to the current
// text.
func (g *Gate) Submit(ctx context.Context, identityID string) (types.Proposal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	d, ok := g.drafts[identityID]
	if !ok {
		return types.Proposal{}, ErrNoDraft
	}
	if d.State != types.DraftApproved || d.Verdict == nil || !d.Verdict.Approved ||
		!d.Verdict.Binds(d.Title, d.Content) {
		return types.Proposal{}, ErrNotApproved
	}

	category := d.Category
	if category == "" {
		category = types.CategoryOther
	}

	p, err := g.board.Create(ctx, d.Title, d.Content, category)
	if err != nil {
		// Keep the draft so the user can retry the submit.
		return types.Proposal{}, err
	}
	d.State = types.DraftSubmitted
	delete(g.drafts, identityID)
	return p, nil
}

// Discard drops the identity's draft and any held verdict.
func (g *Gate) Discard(identityID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.drafts, identityID)
}
