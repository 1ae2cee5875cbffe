package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateReportItem inserts an item row. Categories are unique within their
// report.
func (db *DB) CreateReportItem(ctx context.Context, item *ReportItem) error {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO report_items (report_id, category, status, score, rating, total_reviews, feedback_summary, notes, metadata, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		item.ReportID, item.Category, item.Status, item.Score, item.Rating, item.TotalReviews,
		item.FeedbackSummary, item.Notes, metadata, item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report item: %w", err)
	}
	return nil
}

// GetReportItem retrieves an item by ID. Returns nil when not found.
func (db *DB) GetReportItem(ctx context.Context, itemID uuid.UUID) (*ReportItem, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, report_id, category, status, score, rating, total_reviews, feedback_summary, notes, metadata, sort_order, created_at, updated_at
		 FROM report_items WHERE id = $1`,
		itemID,
	)
	item, err := scanReportItem(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report item: %w", err)
	}
	return item, nil
}

// ListReportItemsByReport retrieves a report's items in sort order.
func (db *DB) ListReportItemsByReport(ctx context.Context, reportID uuid.UUID) ([]ReportItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, report_id, category, status, score, rating, total_reviews, feedback_summary, notes, metadata, sort_order, created_at, updated_at
		 FROM report_items WHERE report_id = $1 ORDER BY sort_order ASC`,
		reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list report items: %w", err)
	}
	defer rows.Close()

	var items []ReportItem
	for rows.Next() {
		item, err := scanReportItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report item: %w", err)
		}
		items = append(items, *item)
	}
	return items, nil
}

// UpdateReportItem writes all mutable fields of an item. Callers load the
// row, apply their edit, and save; the scoring cascade runs afterward.
func (db *DB) UpdateReportItem(ctx context.Context, item *ReportItem) error {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE report_items
		 SET status = $1, score = $2, rating = $3, total_reviews = $4,
		     feedback_summary = $5, notes = $6, metadata = $7, sort_order = $8,
		     updated_at = NOW()
		 WHERE id = $9`,
		item.Status, item.Score, item.Rating, item.TotalReviews,
		item.FeedbackSummary, item.Notes, metadata, item.SortOrder, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report item: %w", err)
	}
	return nil
}

// UpsertItemResult overwrites the item matching (report, category) with an
// analyzer result, creating the row if the catalog has drifted and no item
// exists yet. Analyzer runs are idempotent given the same inputs.
func (db *DB) UpsertItemResult(ctx context.Context, item *ReportItem) error {
	metadata, err := marshalMetadata(item.Metadata)
	if err != nil {
		return err
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO report_items (report_id, category, status, score, rating, total_reviews, feedback_summary, notes, metadata, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (report_id, category) DO UPDATE
		 SET status = $3, score = $4, rating = $5, total_reviews = $6,
		     feedback_summary = $7, notes = $8, metadata = $9, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		item.ReportID, item.Category, item.Status, item.Score, item.Rating, item.TotalReviews,
		item.FeedbackSummary, item.Notes, metadata, item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert item result: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReportItem(row rowScanner) (*ReportItem, error) {
	var item ReportItem
	var metadata []byte
	err := row.Scan(&item.ID, &item.ReportID, &item.Category, &item.Status, &item.Score,
		&item.Rating, &item.TotalReviews, &item.FeedbackSummary, &item.Notes,
		&metadata, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &item.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode item metadata: %w", err)
		}
	}
	return &item, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode item metadata: %w", err)
	}
	return data, nil
}
