// Package seeding builds the initial report and item rows for a new report
// set from the catalog, optionally running the website analyzer immediately
// when the prospect's URL is already known.
package seeding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jordan/marketing-audit/internal/analyzer"
	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/db"
	"github.com/jordan/marketing-audit/internal/scoring"
)

// Store is the subset of database operations seeding needs.
type Store interface {
	scoring.Store
	CreateReport(ctx context.Context, report *db.Report) error
	CreateReportItem(ctx context.Context, item *db.ReportItem) error
	UpdateReportOpportunities(ctx context.Context, reportID uuid.UUID, opportunitiesText string) error
}

// SeedReports creates one report per catalog config for the industry, with
// one item per category. When a website URL is present the website report is
// analyzed immediately; every other report starts as a draft of neutral
// items. Finishes with the set-level recompute so the overall max score is
// correct from creation, before any scoring has happened.
func SeedReports(ctx context.Context, store Store, setID uuid.UUID, industry, websiteURL string, opts *analyzer.Options) error {
	for _, cfg := range catalog.Configs(industry) {
		report := &db.Report{
			ReportSetID: setID,
			ReportType:  cfg.ReportType,
			Title:       cfg.Title,
			Status:      db.ReportDraft,
			MaxScore:    cfg.MaxScore(),
		}
		if err := store.CreateReport(ctx, report); err != nil {
			return fmt.Errorf("failed to seed %s report: %w", cfg.ReportType, err)
		}

		var results []analyzer.CheckResult
		if cfg.ReportType == catalog.ReportTypeWebsite && websiteURL != "" {
			results = analyzer.AnalyzeWebsite(ctx, websiteURL, opts)
		}

		for i, category := range cfg.Categories {
			item := emptyItem(report.ID, category.Category, i)
			// Tolerate catalog/analyzer drift: a category with no matching
			// analyzer result stays an empty neutral item.
			if match := findResult(results, category.Category); match != nil {
				item = ResultItem(report.ID, i, *match)
			}
			if err := store.CreateReportItem(ctx, item); err != nil {
				return fmt.Errorf("failed to seed %s item %q: %w", cfg.ReportType, category.Category, err)
			}
		}

		if len(results) > 0 {
			if err := scoring.RecalculateReport(ctx, store, report.ID); err != nil {
				return fmt.Errorf("failed to score seeded %s report: %w", cfg.ReportType, err)
			}
			items, err := store.ListReportItemsByReport(ctx, report.ID)
			if err != nil {
				return err
			}
			if err := store.UpdateReportOpportunities(ctx, report.ID, BuildOpportunitiesText(cfg, items)); err != nil {
				return err
			}
		}
	}

	return scoring.RecalculateReportSet(ctx, store, setID)
}

// ResultItem converts an analyzer result into an item row for a report.
func ResultItem(reportID uuid.UUID, sortOrder int, result analyzer.CheckResult) *db.ReportItem {
	item := &db.ReportItem{
		ReportID:  reportID,
		Category:  result.Category,
		Status:    db.ItemStatus(result.Status),
		Score:     result.Score,
		Rating:    result.Rating,
		SortOrder: sortOrder,
	}
	if result.TotalReviews != nil {
		item.TotalReviews = result.TotalReviews
	}
	if result.FeedbackSummary != "" {
		item.FeedbackSummary = &result.FeedbackSummary
	}
	if result.Notes != "" {
		item.Notes = &result.Notes
	}
	if result.Metadata != nil {
		item.Metadata = result.Metadata.Bag()
	}
	return item
}

func emptyItem(reportID uuid.UUID, category string, sortOrder int) *db.ReportItem {
	return &db.ReportItem{
		ReportID:  reportID,
		Category:  category,
		Status:    db.ItemNeutral,
		SortOrder: sortOrder,
	}
}

func findResult(results []analyzer.CheckResult, category string) *analyzer.CheckResult {
	for i := range results {
		if results[i].Category == category {
			return &results[i]
		}
	}
	return nil
}

// BuildOpportunitiesText generates the report's narrative: every weak scored
// category with its feedback sentence, then a line naming the categories
// still awaiting manual review. Weakness is judged against the category's
// catalog ceiling: zero on a boolean category, two or less on a 1-5 scale.
func BuildOpportunitiesText(cfg catalog.ReportTypeConfig, items []db.ReportItem) string {
	var weak []string
	var pending []string

	for _, item := range items {
		if item.Score == nil {
			pending = append(pending, item.Category)
			continue
		}
		if isWeak(cfg, item.Category, *item.Score) {
			line := "- " + item.Category
			if item.FeedbackSummary != nil && *item.FeedbackSummary != "" {
				line += ": " + *item.FeedbackSummary
			}
			weak = append(weak, line)
		}
	}

	var sections []string
	if len(weak) > 0 {
		sections = append(sections, "Improvement opportunities:\n"+strings.Join(weak, "\n"))
	}
	if len(pending) > 0 {
		sections = append(sections, "Requires manual review: "+strings.Join(pending, ", ")+".")
	}
	if len(sections) == 0 {
		return "All evaluated categories look strong; no immediate opportunities stand out."
	}
	return strings.Join(sections, "\n\n")
}

func isWeak(cfg catalog.ReportTypeConfig, category string, score float64) bool {
	maxScore := 1
	if template, ok := cfg.Category(category); ok {
		maxScore = template.MaxScore
	}
	if maxScore > 1 {
		return score <= 2
	}
	return score == 0
}
