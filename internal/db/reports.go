package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateReport inserts a report row. MaxScore is fixed at creation from the
// catalog and never changes afterward.
func (db *DB) CreateReport(ctx context.Context, report *Report) error {
	if report.Status == "" {
		report.Status = ReportDraft
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reports (report_set_id, report_type, title, status, score, max_score, tier, opportunities_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		report.ReportSetID, report.ReportType, report.Title, report.Status,
		report.Score, report.MaxScore, report.Tier, report.OpportunitiesText,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID. Returns nil when not found.
func (db *DB) GetReport(ctx context.Context, reportID uuid.UUID) (*Report, error) {
	var report Report
	err := db.pool.QueryRow(ctx,
		`SELECT id, report_set_id, report_type, title, status, score, max_score, tier, opportunities_text, created_at, updated_at
		 FROM reports WHERE id = $1`,
		reportID,
	).Scan(&report.ID, &report.ReportSetID, &report.ReportType, &report.Title, &report.Status,
		&report.Score, &report.MaxScore, &report.Tier, &report.OpportunitiesText,
		&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// ListReportsBySet retrieves a set's reports in creation order.
func (db *DB) ListReportsBySet(ctx context.Context, setID uuid.UUID) ([]Report, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, report_set_id, report_type, title, status, score, max_score, tier, opportunities_text, created_at, updated_at
		 FROM reports WHERE report_set_id = $1 ORDER BY created_at ASC`,
		setID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		if err := rows.Scan(&report.ID, &report.ReportSetID, &report.ReportType, &report.Title, &report.Status,
			&report.Score, &report.MaxScore, &report.Tier, &report.OpportunitiesText,
			&report.CreatedAt, &report.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// UpdateReportScore writes the report-level recompute output.
func (db *DB) UpdateReportScore(ctx context.Context, reportID uuid.UUID, score *float64, tier *Tier, status ReportStatus) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE reports SET score = $1, tier = $2, status = $3, updated_at = NOW() WHERE id = $4`,
		score, tier, status, reportID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report score: %w", err)
	}
	return nil
}

// UpdateReportOpportunities writes the generated opportunities narrative.
func (db *DB) UpdateReportOpportunities(ctx context.Context, reportID uuid.UUID, opportunitiesText string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE reports SET opportunities_text = $1, updated_at = NOW() WHERE id = $2`,
		opportunitiesText, reportID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report opportunities: %w", err)
	}
	return nil
}
