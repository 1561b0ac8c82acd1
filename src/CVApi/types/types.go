package types

import "time"

// Roles
const (
	RoleMember = "member"
	RoleAdmin  = "administrator"
)

// Identity is the authenticated user for a session. Supplied by the auth
// layer per request, never persisted by the core.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Group       string `json:"group,omitempty"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Proposal categories as assigned by moderation.
const (
	CategoryRules      = "RULES"
	CategoryFacilities = "FACILITIES"
	CategoryCurriculum = "CURRICULUM"
	CategoryOther      = "OTHER"
)

// ValidCategory reports whether s is one of the defined categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryRules, CategoryFacilities, CategoryCurriculum, CategoryOther:
		return true
	}
	return false
}

// Proposal review statuses, in workflow order. Transitions are not
// restricted to forward moves; administrators may override freely.
const (
	StatusReceived     = "RECEIVED"
	StatusUnderReview  = "UNDER_REVIEW"
	StatusCoordinating = "COORDINATING"
	StatusResolved     = "RESOLVED"
)

// ValidStatus reports whether s is one of the defined statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusUnderReview, StatusCoordinating, StatusResolved:
		return true
	}
	return false
}

// Endorsement records one identity's support for a proposal. At most one
// per (proposal, identity).
type Endorsement struct {
	IdentityID  string    `json:"identityId"`
	DisplayName string    `json:"displayName"`
	SignedAt    time.Time `json:"signedAt"`
}

// Proposal is a persisted, approved submission.
type Proposal struct {
	ID            uint64        `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Category      string        `json:"category"`
	Status        string        `json:"status"`
	AdminResponse string        `json:"adminResponse"`
	CreatedAt     time.Time     `json:"createdAt"`
	Endorsements  []Endorsement `json:"endorsements"`
}

// ModerationVerdict is the moderation service's judgment on a draft. It is
// bound to the exact (title, content) pair it was produced for; an edit to
// either field makes it stale.
type ModerationVerdict struct {
	Approved       bool     `json:"approved"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	RefinedTitle   string   `json:"refinedTitle,omitempty"`
	RefinedContent string   `json:"refinedContent,omitempty"`
	Advice         string   `json:"advice"`

	// Text pair the verdict was issued for.
	BoundTitle   string `json:"-"`
	BoundContent string `json:"-"`
}

// Binds reports whether the verdict still matches the given draft text.
func (v ModerationVerdict) Binds(title, content string) bool {
	return v.BoundTitle == title && v.BoundContent == content
}

// Draft states while composing a submission.
const (
	DraftComposing = "composing"
	DraftChecking  = "checking"
	DraftApproved  = "approved"
	DraftRejected  = "rejected"
	DraftSubmitted = "submitted"
)

// Draft is the single in-flight submission owned by the gate for one
// identity. Ephemeral; discarded on submit.
type Draft struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Content  string             `json:"content"`
	Category string             `json:"category"`
	State    string             `json:"state"`
	Verdict  *ModerationVerdict `json:"verdict,omitempty"`
}

// Announcement is a news-board entry. Plain CRUD, no invariants.
type Announcement struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
