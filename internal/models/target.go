package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TargetKind distinguishes the two kinds of collective savings targets.
type TargetKind string

const (
	TargetGroup     TargetKind = "group"
	TargetChallenge TargetKind = "challenge"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool {
	return k == TargetGroup || k == TargetChallenge
}

// ContributionCategory returns the reserved expense category used for contributions
// into targets of kind k.
func (k TargetKind) ContributionCategory() string {
	if k == TargetGroup {
		return GroupContributionCategory
	}
	return ChallengeContributionCategory
}

// Reserved expense categories. Plain expenses may not use them.
const (
	GroupContributionCategory     = "Group Contribution"
	ChallengeContributionCategory = "Challenge Contribution"
)

// IsReservedCategory reports whether category marks contribution expenses.
func IsReservedCategory(category string) bool {
	return category == GroupContributionCategory || category == ChallengeContributionCategory
}

// Group is a shared savings goal.
// Only its owner may edit or delete it.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip fund").
	Name string

	Description string

	// Goal is the amount the group is saving towards.
	Goal decimal.Decimal

	// CurrentSavings only grows, and only through contributions.
	CurrentSavings decimal.Decimal

	// OwnerID is the user who created the group.
	OwnerID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Challenge is a time-boxed savings target.
// Its creator is recorded as owner and is the only caller allowed to edit or delete it.
type Challenge struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time

	// Target is the amount the challenge aims to collect.
	Target decimal.Decimal

	// CurrentAmount only grows, and only through contributions.
	CurrentAmount decimal.Decimal

	OwnerID   string
	CreatedAt int64
}

// TargetRef identifies one group or challenge.
type TargetRef struct {
	Kind TargetKind
	ID   string
	Name string
}

// Contribution describes money moved from a user's net worth into a target.
type Contribution struct {
	UserID     string
	TargetKind TargetKind
	TargetID   string
	Amount     decimal.Decimal
}
