// Package model defines the persisted entities of the platform.
//
// These are storage-shaped structs: repositories scan rows into them and
// services operate on them. The HTTP representations (with read-only and
// write-only fields) live in the handler package.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Article statuses. The lifecycle is draft -> published -> archived;
// publishing is the only transition with a dedicated endpoint.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// ArticleStatuses lists the valid article status values, in lifecycle order.
var ArticleStatuses = []string{ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived}

// Trial statuses.
const (
	TrialStatusRecruiting = "recruiting"
	TrialStatusActive     = "active"
	TrialStatusCompleted  = "completed"
)

// TrialStatuses lists the valid trial status values.
var TrialStatuses = []string{TrialStatusRecruiting, TrialStatusActive, TrialStatusCompleted}

// User is an account synced from the auth provider. ID is the provider's
// user id, not a local surrogate key.
type User struct {
	ID        string
	Username  string
	Email     string
	IsStaff   bool
	CreatedAt time.Time
}

// Tag labels articles. Slug is derived from Name server-side and never
// client-settable.
type Tag struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Article is a piece of content with an author and a tag set.
type Article struct {
	ID        uuid.UUID
	Title     string
	Summary   string
	Content   string
	Status    string
	AuthorID  string
	Author    User
	Tags      []Tag
	CreatedAt time.Time
	UpdatedAt time.Time

	// CommentsCount is an aggregate populated only on detail reads.
	CommentsCount int
}

// Trial is a research trial with a budget and a principal investigator.
type Trial struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      string
	Budget      decimal.Decimal
	IsPublic    bool
	PIID        string
	PI          User
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// ParticipantsCount is an aggregate populated only on detail reads.
	ParticipantsCount int
}
