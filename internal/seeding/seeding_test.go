package seeding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/marketing-audit/internal/analyzer"
	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/db"
)

// fakeStore is an in-memory Store capturing everything seeding writes.
type fakeStore struct {
	set           *db.ReportSet
	reports       []*db.Report
	items         map[uuid.UUID][]db.ReportItem
	opportunities map[uuid.UUID]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		set:           &db.ReportSet{ID: uuid.New(), Status: db.ReportSetInProgress},
		items:         map[uuid.UUID][]db.ReportItem{},
		opportunities: map[uuid.UUID]string{},
	}
}

func (f *fakeStore) CreateReport(_ context.Context, report *db.Report) error {
	report.ID = uuid.New()
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeStore) CreateReportItem(_ context.Context, item *db.ReportItem) error {
	item.ID = uuid.New()
	f.items[item.ReportID] = append(f.items[item.ReportID], *item)
	return nil
}

func (f *fakeStore) UpdateReportOpportunities(_ context.Context, reportID uuid.UUID, text string) error {
	f.opportunities[reportID] = text
	return nil
}

func (f *fakeStore) GetReport(_ context.Context, reportID uuid.UUID) (*db.Report, error) {
	for _, r := range f.reports {
		if r.ID == reportID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListReportItemsByReport(_ context.Context, reportID uuid.UUID) ([]db.ReportItem, error) {
	return f.items[reportID], nil
}

func (f *fakeStore) UpdateReportScore(_ context.Context, reportID uuid.UUID, score *float64, tier *db.Tier, status db.ReportStatus) error {
	report, _ := f.GetReport(context.Background(), reportID)
	report.Score = score
	report.Tier = tier
	report.Status = status
	return nil
}

func (f *fakeStore) ListReportsBySet(_ context.Context, setID uuid.UUID) ([]db.Report, error) {
	var reports []db.Report
	for _, r := range f.reports {
		if r.ReportSetID == setID {
			reports = append(reports, *r)
		}
	}
	return reports, nil
}

func (f *fakeStore) UpdateReportSetScore(_ context.Context, _ uuid.UUID, overallScore *float64, overallMaxScore int, tier *db.Tier, status db.ReportSetStatus) error {
	f.set.OverallScore = overallScore
	f.set.OverallMaxScore = overallMaxScore
	f.set.OverallTier = tier
	f.set.Status = status
	return nil
}

func (f *fakeStore) reportByType(reportType string) *db.Report {
	for _, r := range f.reports {
		if r.ReportType == reportType {
			return r
		}
	}
	return nil
}

const seededHomepage = `<!DOCTYPE html>
<html>
<head>
	<title>Bright Smiles Dental</title>
	<meta name="viewport" content="width=device-width">
	<meta name="description" content="Family dentistry.">
	<meta property="og:title" content="Bright Smiles Dental">
	<meta property="og:image" content="/logo.png">
</head>
<body>
	<p>(555) 123-4567 hello@brightsmiles.com</p>
	<a href="https://facebook.com/bs">Facebook</a>
	<a href="https://instagram.com/bs">Instagram</a>
</body>
</html>`

func TestSeedReportsWithWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(seededHomepage))
	}))
	defer srv.Close()

	store := newFakeStore()
	setID := store.set.ID

	require.NoError(t, SeedReports(context.Background(), store, setID, catalog.IndustryDental, srv.URL, nil))

	// Dental gets five reports, each pre-populated from the catalog.
	require.Len(t, store.reports, 5)
	for _, cfg := range catalog.Configs(catalog.IndustryDental) {
		report := store.reportByType(cfg.ReportType)
		require.NotNil(t, report, cfg.ReportType)
		assert.Equal(t, cfg.MaxScore(), report.MaxScore)
		assert.Len(t, store.items[report.ID], len(cfg.Categories))
	}

	// The website report is scored immediately: every category carries a
	// score, so the report completes on creation.
	website := store.reportByType(catalog.ReportTypeWebsite)
	assert.Equal(t, db.ReportCompleted, website.Status)
	require.NotNil(t, website.Score)
	assert.NotNil(t, website.Tier)
	for _, item := range store.items[website.ID] {
		assert.NotNil(t, item.Score, item.Category)
	}
	assert.NotEmpty(t, store.opportunities[website.ID])

	// Everything else stays a draft of neutral, unscored items.
	brand := store.reportByType(catalog.ReportTypeBrand)
	assert.Equal(t, db.ReportDraft, brand.Status)
	assert.Nil(t, brand.Score)
	for _, item := range store.items[brand.ID] {
		assert.Equal(t, db.ItemNeutral, item.Status)
		assert.Nil(t, item.Score)
	}

	// Set totals reflect every report's ceiling from the start.
	expectedMax := 0
	for _, cfg := range catalog.Configs(catalog.IndustryDental) {
		expectedMax += cfg.MaxScore()
	}
	assert.Equal(t, expectedMax, store.set.OverallMaxScore)
	assert.Equal(t, db.ReportSetNeedsReview, store.set.Status)
}

func TestSeedReportsWithoutWebsite(t *testing.T) {
	store := newFakeStore()

	require.NoError(t, SeedReports(context.Background(), store, store.set.ID, "", "", nil))

	// Generic industry: four reports, all drafts, nothing scored.
	require.Len(t, store.reports, 4)
	for _, report := range store.reports {
		assert.Equal(t, db.ReportDraft, report.Status)
		assert.Nil(t, report.Score)
	}
	assert.Nil(t, store.set.OverallScore)
	assert.Equal(t, 63, store.set.OverallMaxScore)
	assert.Empty(t, store.opportunities)
}

func TestBuildOpportunitiesText(t *testing.T) {
	cfg := catalog.Configs("")[0] // website config

	feedback := "No responsive viewport meta tag was found."
	items := []db.ReportItem{
		{Category: catalog.CategorySSL, Score: score(1)},
		{Category: catalog.CategoryMobile, Score: score(0), FeedbackSummary: &feedback},
		{Category: catalog.CategorySEO},
	}

	text := BuildOpportunitiesText(cfg, items)
	assert.Contains(t, text, "Improvement opportunities:")
	assert.Contains(t, text, "- Mobile Friendliness: No responsive viewport meta tag was found.")
	assert.Contains(t, text, "Requires manual review: SEO Basics.")
	assert.NotContains(t, text, "SSL Certificate")
}

func TestBuildOpportunitiesTextScaleWeakness(t *testing.T) {
	var brandCfg catalog.ReportTypeConfig
	for _, cfg := range catalog.Configs("") {
		if cfg.ReportType == catalog.ReportTypeBrand {
			brandCfg = cfg
		}
	}

	items := []db.ReportItem{
		{Category: catalog.CategoryLogoUsage, Score: score(2)},
		{Category: catalog.CategoryColorPalette, Score: score(3)},
	}

	// On a 1-5 scale, two and below is weak; three is not.
	text := BuildOpportunitiesText(brandCfg, items)
	assert.Contains(t, text, catalog.CategoryLogoUsage)
	assert.NotContains(t, text, catalog.CategoryColorPalette)
}

func TestBuildOpportunitiesTextAllStrong(t *testing.T) {
	cfg := catalog.Configs("")[0]
	items := []db.ReportItem{
		{Category: catalog.CategorySSL, Score: score(1)},
		{Category: catalog.CategoryMobile, Score: score(1)},
	}

	text := BuildOpportunitiesText(cfg, items)
	assert.Equal(t, "All evaluated categories look strong; no immediate opportunities stand out.", text)
}

func TestResultItemConversion(t *testing.T) {
	reportID := uuid.New()
	rating := 4.5
	reviews := 20

	item := ResultItem(reportID, 2, analyzerResult(rating, reviews))
	assert.Equal(t, reportID, item.ReportID)
	assert.Equal(t, 2, item.SortOrder)
	assert.Equal(t, db.ItemPass, item.Status)
	require.NotNil(t, item.Score)
	assert.Equal(t, 1.0, *item.Score)
	require.NotNil(t, item.Rating)
	assert.Equal(t, rating, *item.Rating)
	require.NotNil(t, item.TotalReviews)
	assert.Equal(t, reviews, *item.TotalReviews)
	require.NotNil(t, item.FeedbackSummary)
	assert.Equal(t, "Found on Google.", *item.FeedbackSummary)
	assert.Equal(t, "Google", item.Metadata["platform"])
}

func score(v float64) *float64 { return &v }

func analyzerResult(rating float64, reviews int) analyzer.CheckResult {
	return analyzer.CheckResult{
		Category:        "Google",
		Status:          analyzer.StatusPass,
		Score:           analyzer.Score(1),
		Rating:          &rating,
		TotalReviews:    &reviews,
		FeedbackSummary: "Found on Google.",
		Metadata:        analyzer.ReviewMetadata{Platform: "Google"},
	}
}
