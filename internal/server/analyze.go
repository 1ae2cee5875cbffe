package server

import (
	"net/http"

	"github.com/jordan/marketing-audit/internal/analyzer"
	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/scoring"
	"github.com/jordan/marketing-audit/internal/seeding"
)

// AnalyzeReportResponse returns the rescored report with its refreshed items
type AnalyzeReportResponse struct {
	Report ReportResponse       `json:"report"`
	Items  []ReportItemResponse `json:"items"`
}

// handleAnalyzeReport re-runs the automated analyzer for one report. Upstream
// degradation (unreachable site, missing API key, no listings) is reflected
// in the item rows, never as an HTTP error; only missing records and database
// failures surface as error responses.
func (s *Server) handleAnalyzeReport(w http.ResponseWriter, r *http.Request) {
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

	set, err := s.db.GetReportSet(r.Context(), report.ReportSetID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if set == nil {
		s.errorResponse(w, http.StatusNotFound, "Report set not found")
		return
	}

	company, err := s.db.GetCompany(r.Context(), set.CompanyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return
	}

	items, err := s.db.ListReportItemsByReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	websiteURL := ""
	if company.WebsiteURL != nil {
		websiteURL = *company.WebsiteURL
	}
	address := ""
	if company.Address != nil {
		address = *company.Address
	}

	var results []analyzer.CheckResult
	switch report.ReportType {
	case catalog.ReportTypeWebsite:
		results = analyzer.AnalyzeWebsite(r.Context(), websiteURL, s.analyzerOpts)
	case catalog.ReportTypeBrand:
		results = analyzer.AnalyzeBrand(r.Context(), websiteURL, s.analyzerOpts)
	case catalog.ReportTypeReviews:
		platforms := make([]string, 0, len(items))
		for _, item := range items {
			platforms = append(platforms, item.Category)
		}
		results = analyzer.AnalyzeReviews(r.Context(), company.Name, address, platforms, s.places, s.yelp)
	case catalog.ReportTypeCompetitors:
		results = analyzer.AnalyzeCompetitors(r.Context(), company.Name, address, company.Industry, s.places, s.analyzerOpts)
	default:
		s.errorResponse(w, http.StatusUnprocessableEntity, "Report type "+report.ReportType+" has no automated analyzer")
		return
	}

	// Keep the operator's row order stable across re-runs: existing categories
	// hold their sort order, analyzer-only categories append after them.
	sortOrders := make(map[string]int, len(items))
	for _, item := range items {
		sortOrders[item.Category] = item.SortOrder
	}
	next := len(items)
	for _, result := range results {
		order, ok := sortOrders[result.Category]
		if !ok {
			order = next
			next++
		}
		item := seeding.ResultItem(reportID, order, result)
		if err := s.db.UpsertItemResult(r.Context(), item); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	if err := scoring.RecalculateCascade(r.Context(), s.db, reportID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Score recalculation failed: "+err.Error())
		return
	}

	refreshed, err := s.db.ListReportItemsByReport(r.Context(), reportID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if cfg, ok := reportConfig(company.Industry, report.ReportType); ok {
		text := seeding.BuildOpportunitiesText(cfg, refreshed)
		if err := s.db.UpdateReportOpportunities(r.Context(), reportID, text); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	updated, err := s.db.GetReport(r.Context(), reportID)
	if err != nil || updated == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to reload report")
		return
	}

	resp := AnalyzeReportResponse{Report: reportResponse(*updated)}
	for _, item := range refreshed {
		resp.Items = append(resp.Items, itemResponse(item))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func reportConfig(industry, reportType string) (catalog.ReportTypeConfig, bool) {
	for _, cfg := range catalog.Configs(industry) {
		if cfg.ReportType == reportType {
			return cfg, true
		}
	}
	return catalog.ReportTypeConfig{}, false
}
