package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateReportSet inserts a report set in its initial in_progress state.
func (db *DB) CreateReportSet(ctx context.Context, set *ReportSet) error {
	if set.Status == "" {
		set.Status = ReportSetInProgress
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO report_sets (company_id, status, overall_max_score)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		set.CompanyID, set.Status, set.OverallMaxScore,
	).Scan(&set.ID, &set.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report set: %w", err)
	}
	return nil
}

// GetReportSet retrieves a report set by ID. Returns nil when not found.
func (db *DB) GetReportSet(ctx context.Context, setID uuid.UUID) (*ReportSet, error) {
	var set ReportSet
	err := db.pool.QueryRow(ctx,
		`SELECT id, company_id, status, overall_score, overall_max_score, overall_tier, created_at
		 FROM report_sets WHERE id = $1`,
		setID,
	).Scan(&set.ID, &set.CompanyID, &set.Status, &set.OverallScore, &set.OverallMaxScore, &set.OverallTier, &set.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report set: %w", err)
	}
	return &set, nil
}

// UpdateReportSetScore writes the set-level recompute output.
func (db *DB) UpdateReportSetScore(ctx context.Context, setID uuid.UUID, overallScore *float64, overallMaxScore int, tier *Tier, status ReportSetStatus) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE report_sets
		 SET overall_score = $1, overall_max_score = $2, overall_tier = $3, status = $4
		 WHERE id = $5`,
		overallScore, overallMaxScore, tier, status, setID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report set score: %w", err)
	}
	return nil
}

// ListReportSetsByCompany retrieves a company's report sets, newest first.
func (db *DB) ListReportSetsByCompany(ctx context.Context, companyID uuid.UUID) ([]ReportSet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id, status, overall_score, overall_max_score, overall_tier, created_at
		 FROM report_sets WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list report sets: %w", err)
	}
	defer rows.Close()

	var sets []ReportSet
	for rows.Next() {
		var set ReportSet
		if err := rows.Scan(&set.ID, &set.CompanyID, &set.Status, &set.OverallScore, &set.OverallMaxScore, &set.OverallTier, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}
