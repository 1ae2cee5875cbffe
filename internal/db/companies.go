package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCompany inserts a company record and returns it with its ID set.
func (db *DB) CreateCompany(ctx context.Context, company *Company) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, industry, website_url, address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		company.Name, company.Industry, company.WebsiteURL, company.Address,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// GetCompany retrieves a company by ID. Returns nil when not found.
func (db *DB) GetCompany(ctx context.Context, companyID uuid.UUID) (*Company, error) {
	var company Company
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, industry, website_url, address, created_at
		 FROM companies WHERE id = $1`,
		companyID,
	).Scan(&company.ID, &company.Name, &company.Industry, &company.WebsiteURL, &company.Address, &company.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}
