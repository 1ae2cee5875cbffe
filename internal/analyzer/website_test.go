package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/marketing-audit/internal/catalog"
)

const richHomepage = `<!DOCTYPE html>
<html>
<head>
	<title>Bright Smiles Dental</title>
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="description" content="Family dentistry in Springfield.">
	<meta property="og:title" content="Bright Smiles Dental">
	<meta property="og:image" content="https://example.com/logo.png">
</head>
<body>
	<p>Call us at (555) 123-4567 or email hello@brightsmiles.com</p>
	<a href="https://www.facebook.com/brightsmiles">Facebook</a>
	<a href="https://instagram.com/brightsmiles">Instagram</a>
</body>
</html>`

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func resultFor(t *testing.T, results []CheckResult, category string) CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Category == category {
			return r
		}
	}
	t.Fatalf("no result for category %q", category)
	return CheckResult{}
}

func TestAnalyzeWebsiteRichPage(t *testing.T) {
	srv := serveHTML(t, richHomepage)

	results := AnalyzeWebsite(context.Background(), srv.URL, nil)
	require.Len(t, results, 7)

	// The test server is plain HTTP, so SSL is the one scored failure.
	ssl := resultFor(t, results, catalog.CategorySSL)
	assert.Equal(t, StatusError, ssl.Status)
	require.NotNil(t, ssl.Score)
	assert.Equal(t, 0.0, *ssl.Score)

	mobile := resultFor(t, results, catalog.CategoryMobile)
	assert.Equal(t, StatusPass, mobile.Status)
	require.NotNil(t, mobile.Score)
	assert.Equal(t, 1.0, *mobile.Score)

	seo := resultFor(t, results, catalog.CategorySEO)
	assert.Equal(t, StatusPass, seo.Status)

	social := resultFor(t, results, catalog.CategorySocial)
	assert.Equal(t, StatusPass, social.Status)
	require.NotNil(t, social.Score)
	assert.Equal(t, 1.0, *social.Score)

	og := resultFor(t, results, catalog.CategoryOpenGraph)
	assert.Equal(t, StatusPass, og.Status)

	contact := resultFor(t, results, catalog.CategoryContact)
	assert.Equal(t, StatusPass, contact.Status)
}

func TestAnalyzeWebsiteBarePage(t *testing.T) {
	srv := serveHTML(t, `<html><head></head><body><p>hello</p></body></html>`)

	results := AnalyzeWebsite(context.Background(), srv.URL, nil)
	require.Len(t, results, 7)

	for _, category := range []string{
		catalog.CategoryMobile,
		catalog.CategorySEO,
		catalog.CategorySocial,
		catalog.CategoryOpenGraph,
		catalog.CategoryContact,
	} {
		r := resultFor(t, results, category)
		assert.Equal(t, StatusError, r.Status, category)
		require.NotNil(t, r.Score, category)
		assert.Equal(t, 0.0, *r.Score, category)
	}
}

func TestAnalyzeWebsiteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	results := AnalyzeWebsite(context.Background(), url, nil)
	require.Len(t, results, 7)

	ssl := results[0]
	assert.Equal(t, catalog.CategorySSL, ssl.Category)
	assert.Equal(t, StatusError, ssl.Status)
	require.NotNil(t, ssl.Score)
	assert.Equal(t, 0.0, *ssl.Score)
	assert.NotEmpty(t, ssl.Notes)

	for _, r := range results[1:] {
		assert.Equal(t, StatusNeutral, r.Status, r.Category)
		assert.Nil(t, r.Score, r.Category)
		assert.NotEmpty(t, r.Notes, r.Category)
	}
}

func TestCheckSpeedThresholds(t *testing.T) {
	fast := checkSpeed(500 * time.Millisecond)
	assert.Equal(t, StatusPass, fast.Status)
	require.NotNil(t, fast.Score)
	assert.Equal(t, 1.0, *fast.Score)

	slow := checkSpeed(3 * time.Second)
	assert.Equal(t, StatusWarning, slow.Status)
	require.NotNil(t, slow.Score)
	assert.Equal(t, 1.0, *slow.Score)

	crawl := checkSpeed(5 * time.Second)
	assert.Equal(t, StatusError, crawl.Status)
	require.NotNil(t, crawl.Score)
	assert.Equal(t, 0.0, *crawl.Score)
}

func TestHalfCredit(t *testing.T) {
	score, status := halfCredit(true, true)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, StatusPass, status)

	// One of two rounds up to full credit but keeps the warning visible.
	score, status = halfCredit(true, false)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, StatusWarning, status)

	score, status = halfCredit(false, false)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, StatusError, status)
}

func TestCheckSocialLinksSinglePlatform(t *testing.T) {
	srv := serveHTML(t, `<html><body>
		<a href="https://twitter.com/someone">Twitter</a>
		<a href="https://x.com/someone">X</a>
	</body></html>`)

	results := AnalyzeWebsite(context.Background(), srv.URL, nil)
	social := resultFor(t, results, catalog.CategorySocial)

	// twitter.com and x.com collapse into one platform.
	assert.Equal(t, StatusWarning, social.Status)
	require.NotNil(t, social.Score)
	assert.Equal(t, 0.0, *social.Score)
}
