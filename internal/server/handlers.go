package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jordan/marketing-audit/internal/db"
	"github.com/jordan/marketing-audit/internal/scoring"
	"github.com/jordan/marketing-audit/internal/seeding"
)

// CreateCompanyRequest represents the request body for POST /companies
type CreateCompanyRequest struct {
	Name       string `json:"name" validate:"required"`
	Industry   string `json:"industry"`
	WebsiteURL string `json:"website_url,omitempty" validate:"omitempty,url|fqdn"`
	Address    string `json:"address,omitempty"`
}

// CompanyResponse represents a company record
type CompanyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Industry   string `json:"industry"`
	WebsiteURL string `json:"website_url,omitempty"`
	Address    string `json:"address,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// CreateReportSetRequest represents the request body for POST /report-sets
type CreateReportSetRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// ReportSetResponse represents a report set with its reports
type ReportSetResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	Status          string           `json:"status"`
	OverallScore    *float64         `json:"overall_score"`
	OverallMaxScore int              `json:"overall_max_score"`
	OverallTier     *string          `json:"overall_tier"`
	CreatedAt       string           `json:"created_at"`
	Reports         []ReportResponse `json:"reports,omitempty"`
}

// ReportResponse represents one report
type ReportResponse struct {
	ID                string   `json:"id"`
	ReportType        string   `json:"report_type"`
	Title             string   `json:"title"`
	Status            string   `json:"status"`
	Score             *float64 `json:"score"`
	MaxScore          int      `json:"max_score"`
	Tier              *string  `json:"tier"`
	OpportunitiesText *string  `json:"opportunities_text,omitempty"`
}

// ReportItemResponse represents one category row
type ReportItemResponse struct {
	ID              string         `json:"id"`
	Category        string         `json:"category"`
	Status          string         `json:"status"`
	Score           *float64       `json:"score"`
	Rating          *float64       `json:"rating,omitempty"`
	TotalReviews    *int           `json:"total_reviews,omitempty"`
	FeedbackSummary *string        `json:"feedback_summary,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	SortOrder       int            `json:"sort_order"`
}

// UpdateReportItemRequest is the operator grid edit: present fields are
// applied, absent fields are left alone. Saving re-triggers the scoring
// cascade.
type UpdateReportItemRequest struct {
	Status          *string  `json:"status" validate:"omitempty,oneof=pass warning error neutral"`
	Score           *float64 `json:"score" validate:"omitempty,gte=0"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	TotalReviews    *int     `json:"total_reviews" validate:"omitempty,gte=0"`
	FeedbackSummary *string  `json:"feedback_summary"`
	Notes           *string  `json:"notes"`
}

// handleCreateCompany stores the analysis inputs for a prospect
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	company := &db.Company{
		Name:     req.Name,
		Industry: req.Industry,
	}
	if req.WebsiteURL != "" {
		company.WebsiteURL = &req.WebsiteURL
	}
	if req.Address != "" {
		company.Address = &req.Address
	}

	if err := s.db.CreateCompany(r.Context(), company); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, companyResponse(company))
}

// handleGetCompany returns a company by ID
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	company, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, companyResponse(company))
}

// handleListCompanyReportSets returns a company's report sets, newest first
func (s *Server) handleListCompanyReportSets(w http.ResponseWriter, r *http.Request) {
	companyID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	company, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	sets, err := s.db.ListReportSetsByCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	responses := make([]ReportSetResponse, 0, len(sets))
	for _, set := range sets {
		responses = append(responses, ReportSetResponse{
			ID:              set.ID.String(),
			CompanyID:       set.CompanyID.String(),
			Status:          string(set.Status),
			OverallScore:    set.OverallScore,
			OverallMaxScore: set.OverallMaxScore,
			OverallTier:     tierString(set.OverallTier),
			CreatedAt:       set.CreatedAt.Format(time.RFC3339),
		})
	}
	s.jsonResponse(w, http.StatusOK, responses)
}

// handleCreateReportSet creates a report set and seeds it from the catalog
func (s *Server) handleCreateReportSet(w http.ResponseWriter, r *http.Request) {
	var req CreateReportSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	company, err := s.db.GetCompany(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	set := &db.ReportSet{CompanyID: company.ID}
	if err := s.db.CreateReportSet(r.Context(), set); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	websiteURL := ""
	if company.WebsiteURL != nil {
		websiteURL = *company.WebsiteURL
	}
	if err := seeding.SeedReports(r.Context(), s.db, set.ID, company.Industry, websiteURL, s.analyzerOpts); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Seeding failed: "+err.Error())
		return
	}

	s.respondReportSet(w, r, set.ID, http.StatusCreated)
}

// handleGetReportSet returns a report set with its reports
func (s *Server) handleGetReportSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	s.respondReportSet(w, r, setID, http.StatusOK)
}

// handleGetReport returns one report
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	report, err := s.db.GetReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if report == nil {
		s.errorResponse(w, http.StatusNotFound, "Report not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, reportResponse(*report))
}

// handleListReportItems returns a report's items in sort order
func (s *Server) handleListReportItems(w http.ResponseWriter, r *http.Request) {
	reportID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	report, err := s.db.GetReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if report == nil {
		s.errorResponse(w, http.StatusNotFound, "Report not found")
		return
	}

	items, err := s.db.ListReportItemsByReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	responses := make([]ReportItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemResponse(item))
	}
	s.jsonResponse(w, http.StatusOK, responses)
}

// handleUpdateReportItem applies an operator edit to one item and re-runs
// the scoring cascade
func (s *Server) handleUpdateReportItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateReportItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	item, err := s.db.GetReportItem(r.Context(), itemID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if item == nil {
		s.errorResponse(w, http.StatusNotFound, "Report item not found")
		return
	}

	if req.Status != nil {
		item.Status = db.ItemStatus(*req.Status)
	}
	if req.Score != nil {
		item.Score = req.Score
	}
	if req.Rating != nil {
		item.Rating = req.Rating
	}
	if req.TotalReviews != nil {
		item.TotalReviews = req.TotalReviews
	}
	if req.FeedbackSummary != nil {
		item.FeedbackSummary = req.FeedbackSummary
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}

	if err := s.db.UpdateReportItem(r.Context(), item); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Every single-field edit re-runs the full cascade, report then set.
	if err := scoring.RecalculateCascade(r.Context(), s.db, item.ReportID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Score recalculation failed: "+err.Error())
		return
	}

	updated, err := s.db.GetReportItem(r.Context(), itemID)
	if err != nil || updated == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to reload item")
		return
	}
	s.jsonResponse(w, http.StatusOK, itemResponse(*updated))
}

func (s *Server) respondReportSet(w http.ResponseWriter, r *http.Request, setID uuid.UUID, status int) {
	set, err := s.db.GetReportSet(r.Context(), setID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if set == nil {
		s.errorResponse(w, http.StatusNotFound, "Report set not found")
		return
	}

	reports, err := s.db.ListReportsBySet(r.Context(), setID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	resp := ReportSetResponse{
		ID:              set.ID.String(),
		CompanyID:       set.CompanyID.String(),
		Status:          string(set.Status),
		OverallScore:    set.OverallScore,
		OverallMaxScore: set.OverallMaxScore,
		OverallTier:     tierString(set.OverallTier),
		CreatedAt:       set.CreatedAt.Format(time.RFC3339),
	}
	for _, report := range reports {
		resp.Reports = append(resp.Reports, reportResponse(report))
	}
	s.jsonResponse(w, status, resp)
}

func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	idStr := r.PathValue(name)
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "ID is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func companyResponse(company *db.Company) CompanyResponse {
	resp := CompanyResponse{
		ID:        company.ID.String(),
		Name:      company.Name,
		Industry:  company.Industry,
		CreatedAt: company.CreatedAt.Format(time.RFC3339),
	}
	if company.WebsiteURL != nil {
		resp.WebsiteURL = *company.WebsiteURL
	}
	if company.Address != nil {
		resp.Address = *company.Address
	}
	return resp
}

func reportResponse(report db.Report) ReportResponse {
	return ReportResponse{
		ID:                report.ID.String(),
		ReportType:        report.ReportType,
		Title:             report.Title,
		Status:            string(report.Status),
		Score:             report.Score,
		MaxScore:          report.MaxScore,
		Tier:              tierString(report.Tier),
		OpportunitiesText: report.OpportunitiesText,
	}
}

func itemResponse(item db.ReportItem) ReportItemResponse {
	return ReportItemResponse{
		ID:              item.ID.String(),
		Category:        item.Category,
		Status:          string(item.Status),
		Score:           item.Score,
		Rating:          item.Rating,
		TotalReviews:    item.TotalReviews,
		FeedbackSummary: item.FeedbackSummary,
		Notes:           item.Notes,
		Metadata:        item.Metadata,
		SortOrder:       item.SortOrder,
	}
}

func tierString(tier *db.Tier) *string {
	if tier == nil {
		return nil
	}
	s := string(*tier)
	return &s
}
