// Package scoring converts scores into pass/fair/fail tiers and keeps the
// three-level aggregate (item, report, report set) consistent. The two
// recompute operations are idempotent read-modify-write passes and are cheap
// enough to run after every single-field edit; callers run them as a pair,
// report first, any time an item changes.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/jordan/marketing-audit/internal/db"
)

// Tier thresholds as fractions of the max score.
const (
	passThreshold = 0.70
	fairThreshold = 0.40
)

// Store is the subset of database operations the scoring cascade needs.
type Store interface {
	GetReport(ctx context.Context, reportID uuid.UUID) (*db.Report, error)
	ListReportItemsByReport(ctx context.Context, reportID uuid.UUID) ([]db.ReportItem, error)
	UpdateReportScore(ctx context.Context, reportID uuid.UUID, score *float64, tier *db.Tier, status db.ReportStatus) error
	ListReportsBySet(ctx context.Context, setID uuid.UUID) ([]db.Report, error)
	UpdateReportSetScore(ctx context.Context, setID uuid.UUID, overallScore *float64, overallMaxScore int, tier *db.Tier, status db.ReportSetStatus) error
}

// Tier classifies a score against its ceiling: 70% and up passes, 40% and up
// is fair, everything else fails. A non-positive ceiling always fails.
func Tier(score float64, maxScore int) db.Tier {
	if maxScore <= 0 {
		return db.TierFail
	}
	ratio := score / float64(maxScore)
	switch {
	case ratio >= passThreshold:
		return db.TierPass
	case ratio >= fairThreshold:
		return db.TierFair
	default:
		return db.TierFail
	}
}

// Percent returns the score as a whole percentage, rounded to nearest.
func Percent(score float64, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(score / float64(maxScore) * 100))
}

// RecalculateReport recomputes one report's score, tier, and status from its
// items. Unscored items (nil score) are excluded from the sum but still count
// toward "all scored"; a report with zero scored items keeps a nil score so
// "nothing done" stays distinct from "scored zero". A report with no items is
// left untouched.
func RecalculateReport(ctx context.Context, store Store, reportID uuid.UUID) error {
	report, err := store.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("report not found: %s", reportID)
	}

	items, err := store.ListReportItemsByReport(ctx, reportID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	scored := 0
	total := 0.0
	for _, item := range items {
		if item.Score != nil {
			scored++
			total += *item.Score
		}
	}

	var score *float64
	var tier *db.Tier
	status := db.ReportInProgress
	switch scored {
	case 0:
		status = db.ReportDraft
	case len(items):
		status = db.ReportCompleted
	}
	if scored > 0 {
		score = &total
		t := Tier(total, report.MaxScore)
		tier = &t
	}

	return store.UpdateReportScore(ctx, reportID, score, tier, status)
}

// RecalculateReportSet recomputes a set's overall score from its reports.
// The denominator always sums every report's MaxScore, scored or not;
// excluding unfinished reports would inflate the tier. A set with no reports
// is left untouched.
func RecalculateReportSet(ctx context.Context, store Store, setID uuid.UUID) error {
	reports, err := store.ListReportsBySet(ctx, setID)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return nil
	}

	overallMax := 0
	scored := 0
	total := 0.0
	completed := 0
	for _, report := range reports {
		overallMax += report.MaxScore
		if report.Score != nil {
			scored++
			total += *report.Score
		}
		if report.Status == db.ReportCompleted {
			completed++
		}
	}

	var overallScore *float64
	var tier *db.Tier
	if scored > 0 {
		overallScore = &total
		if overallMax > 0 {
			t := Tier(total, overallMax)
			tier = &t
		}
	}

	status := db.ReportSetNeedsReview
	if completed == len(reports) {
		status = db.ReportSetCompleted
	}

	return store.UpdateReportSetScore(ctx, setID, overallScore, overallMax, tier, status)
}

// RecalculateCascade runs the mandatory pair: the report's recompute followed
// by its owning set's recompute.
func RecalculateCascade(ctx context.Context, store Store, reportID uuid.UUID) error {
	report, err := store.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("report not found: %s", reportID)
	}
	if err := RecalculateReport(ctx, store, reportID); err != nil {
		return err
	}
	return RecalculateReportSet(ctx, store, report.ReportSetID)
}
