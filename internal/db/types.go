package db

import (
	"time"

	"github.com/google/uuid"
)

// ReportSetStatus is the lifecycle state of one analysis run.
type ReportSetStatus string

// Report set statuses.
const (
	ReportSetInProgress  ReportSetStatus = "in_progress"
	ReportSetCompleted   ReportSetStatus = "completed"
	ReportSetNeedsReview ReportSetStatus = "needs_review"
)

// ReportStatus is the lifecycle state of one report within a set.
type ReportStatus string

// Report statuses.
const (
	ReportDraft       ReportStatus = "draft"
	ReportInProgress  ReportStatus = "in_progress"
	ReportCompleted   ReportStatus = "completed"
	ReportNeedsReview ReportStatus = "needs_review"
)

// ItemStatus classifies one category row.
type ItemStatus string

// Report item statuses.
const (
	ItemPass    ItemStatus = "pass"
	ItemWarning ItemStatus = "warning"
	ItemError   ItemStatus = "error"
	ItemNeutral ItemStatus = "neutral"
)

// Tier is the pass/fair/fail classification derived from score vs max score.
type Tier string

// Tiers.
const (
	TierPass Tier = "pass"
	TierFair Tier = "fair"
	TierFail Tier = "fail"
)

// Company is the prospect whose web presence is analyzed. The wider portal
// owns the full company record; this subsystem only reads the analysis
// inputs and creates rows for seeding.
type Company struct {
	ID         uuid.UUID
	Name       string
	Industry   string
	WebsiteURL *string
	Address    *string
	CreatedAt  time.Time
}

// ReportSet is one analysis run for one prospect. OverallMaxScore always
// sums every child report's MaxScore, scored or not.
type ReportSet struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Status          ReportSetStatus
	OverallScore    *float64
	OverallMaxScore int
	OverallTier     *Tier
	CreatedAt       time.Time
}

// Report is one analysis type's results within a report set. A nil Score
// means no item has been scored yet; MaxScore is fixed at creation from the
// catalog.
type Report struct {
	ID                uuid.UUID
	ReportSetID       uuid.UUID
	ReportType        string
	Title             string
	Status            ReportStatus
	Score             *float64
	MaxScore          int
	Tier              *Tier
	OpportunitiesText *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReportItem is one scored or unscored category row within a report. A nil
// Score means "not yet evaluated"; zero is a valid scored value.
type ReportItem struct {
	ID              uuid.UUID
	ReportID        uuid.UUID
	Category        string
	Status          ItemStatus
	Score           *float64
	Rating          *float64
	TotalReviews    *int
	FeedbackSummary *string
	Notes           *string
	Metadata        map[string]any
	SortOrder       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
