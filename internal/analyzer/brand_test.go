package analyzer

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/marketing-audit/internal/catalog"
)

const brandedHomepage = `<!DOCTYPE html>
<html>
<head>
	<title>Bright Smiles Dental</title>
	<link rel="icon" href="/favicon.ico">
	<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Lato">
	<style>
		:root { --brand-primary: #1a6b54; --brand-accent: #f4a261; --brand-ink: #2b2d42; --brand-paper: #ffffff; --brand-muted: #8d99ae; }
		body { font-family: Lato, sans-serif; color: #2b2d42; background: #ffffff; }
		h1 { font-family: "Playfair Display", serif; color: #1a6b54; }
	</style>
</head>
<body>
	<img src="/img/logo.png" alt="Bright Smiles Dental logo">
	<img src="/img/office.jpg" alt="Our Springfield office" loading="lazy">
	<img src="/img/team.jpg" alt="The Bright Smiles team" loading="lazy">
	<a href="https://facebook.com/brightsmiles">Facebook</a>
	<a href="https://instagram.com/brightsmiles">Instagram</a>
	<a href="https://youtube.com/@brightsmiles">YouTube</a>
</body>
</html>`

func TestAnalyzeBrandManualCategoriesNeverScored(t *testing.T) {
	srv := serveHTML(t, brandedHomepage)

	results := AnalyzeBrand(context.Background(), srv.URL, nil)
	require.Len(t, results, 10)

	manual := []string{
		catalog.CategoryLogoConsistency,
		catalog.CategoryLogoLegibility,
		catalog.CategoryBrandVoice,
		catalog.CategorySignage,
		catalog.CategoryBrandCohesion,
	}
	for _, category := range manual {
		r := resultFor(t, results, category)
		assert.Equal(t, StatusNeutral, r.Status, category)
		assert.Nil(t, r.Score, category)
	}
}

func TestAnalyzeBrandAutomatedCategories(t *testing.T) {
	srv := serveHTML(t, brandedHomepage)

	results := AnalyzeBrand(context.Background(), srv.URL, nil)

	logo := resultFor(t, results, catalog.CategoryLogoUsage)
	assert.Equal(t, StatusPass, logo.Status)
	require.NotNil(t, logo.Score)
	assert.GreaterOrEqual(t, *logo.Score, 4.0)

	palette := resultFor(t, results, catalog.CategoryColorPalette)
	require.NotNil(t, palette.Score)
	assert.Equal(t, 5.0, *palette.Score)

	typography := resultFor(t, results, catalog.CategoryTypography)
	require.NotNil(t, typography.Score)
	assert.Equal(t, 5.0, *typography.Score)

	photos := resultFor(t, results, catalog.CategoryPhotography)
	require.NotNil(t, photos.Score)
	assert.Equal(t, 5.0, *photos.Score)

	social := resultFor(t, results, catalog.CategorySocialBranding)
	require.NotNil(t, social.Score)
	assert.Equal(t, 5.0, *social.Score)
}

func TestAnalyzeBrandUnreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	results := AnalyzeBrand(context.Background(), url, nil)
	require.Len(t, results, 10)

	for _, r := range results {
		assert.Equal(t, StatusNeutral, r.Status, r.Category)
		assert.Nil(t, r.Score, r.Category)
		assert.NotEmpty(t, r.Notes, r.Category)
	}
}

func TestScaleResult(t *testing.T) {
	assert.Equal(t, StatusPass, scaleResult("c", 5, "", BrandMetadata{}).Status)
	assert.Equal(t, StatusPass, scaleResult("c", 4, "", BrandMetadata{}).Status)
	assert.Equal(t, StatusWarning, scaleResult("c", 3, "", BrandMetadata{}).Status)
	assert.Equal(t, StatusError, scaleResult("c", 2, "", BrandMetadata{}).Status)
	assert.Equal(t, StatusError, scaleResult("c", 1, "", BrandMetadata{}).Status)
}

func TestCheckPhotographyNoImages(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>text only</p></body></html>`)

	results := AnalyzeBrand(context.Background(), srv.URL, nil)
	photos := resultFor(t, results, catalog.CategoryPhotography)

	assert.Equal(t, StatusError, photos.Status)
	require.NotNil(t, photos.Score)
	assert.Equal(t, 1.0, *photos.Score)
}
