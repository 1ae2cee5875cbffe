package analyzer

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/fetch"
)

// Speed thresholds for the Website Speed check.
const (
	speedPassThreshold = 2000 * time.Millisecond
	speedWarnThreshold = 4000 * time.Millisecond
)

// socialPlatforms maps known social domains to platform names. x.com and
// twitter.com count as the same platform.
var socialPlatforms = map[string]string{
	"facebook.com":  "Facebook",
	"instagram.com": "Instagram",
	"twitter.com":   "Twitter",
	"x.com":         "Twitter",
	"linkedin.com":  "LinkedIn",
	"youtube.com":   "YouTube",
	"tiktok.com":    "TikTok",
	"pinterest.com": "Pinterest",
}

var (
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]?\d{4}`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Options configures analyzer fetching behavior.
type Options struct {
	FetchOptions *fetch.Options
	UseBrowser   bool
	Verbose      bool
}

// AnalyzeWebsite fetches a URL once and runs the seven website heuristics
// against the raw markup. It never returns an error: an unreachable site
// degrades to one scored SSL failure plus six unscored neutral placeholders,
// each carrying the failure text in Notes.
func AnalyzeWebsite(ctx context.Context, rawURL string, opts *Options) []CheckResult {
	if opts == nil {
		opts = &Options{}
	}

	normalized := fetch.NormalizeURL(rawURL)
	result, err := fetch.URL(ctx, normalized, opts.FetchOptions)
	if err != nil {
		return websiteUnreachable(normalized, err)
	}

	html := result.HTML
	if opts.UseBrowser && fetch.LooksLikeAppShell(html) {
		if rendered, berr := fetch.BrowserSimple(ctx, normalized, opts.Verbose); berr == nil {
			html = rendered
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return websiteUnreachable(normalized, err)
	}

	// Each check is independent: no check's outcome depends on another's,
	// so the set is safely re-runnable against the same markup.
	return []CheckResult{
		checkSSL(result.FinalURL),
		checkMobileFriendly(doc),
		checkSpeed(result.Latency),
		checkSEOBasics(doc),
		checkSocialLinks(doc, normalized),
		checkOpenGraph(doc),
		checkContactInfo(html),
	}
}

// websiteUnreachable is the canonical degradation shape: failing to connect
// at all implies no usable HTTPS, so SSL is a scored failure while the
// remaining six categories stay unscored.
func websiteUnreachable(urlStr string, cause error) []CheckResult {
	note := cause.Error()
	results := []CheckResult{{
		Category:        catalog.CategorySSL,
		Status:          StatusError,
		Score:           Score(0),
		FeedbackSummary: "The website could not be reached over a secure connection.",
		Notes:           note,
		Metadata:        WebsiteMetadata{URL: urlStr},
	}}
	for _, category := range catalog.WebsiteCategories()[1:] {
		results = append(results, CheckResult{
			Category:        category,
			Status:          StatusNeutral,
			FeedbackSummary: "Could not evaluate: the website was unreachable.",
			Notes:           note,
			Metadata:        WebsiteMetadata{URL: urlStr},
		})
	}
	return results
}

func checkSSL(finalURL string) CheckResult {
	parsed, err := url.Parse(finalURL)
	secure := err == nil && parsed.Scheme == "https"

	result := CheckResult{
		Category: catalog.CategorySSL,
		Metadata: WebsiteMetadata{URL: finalURL, Signals: map[string]bool{"https": secure}},
	}
	if secure {
		result.Status = StatusPass
		result.Score = Score(1)
		result.FeedbackSummary = "The website is served over HTTPS with a valid certificate."
	} else {
		result.Status = StatusError
		result.Score = Score(0)
		result.FeedbackSummary = "The website is not served over HTTPS."
	}
	return result
}

func checkMobileFriendly(doc *goquery.Document) CheckResult {
	viewport := false
	doc.Find(`meta[name="viewport"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if content, ok := s.Attr("content"); ok && strings.Contains(content, "width") {
			viewport = true
			return false
		}
		return true
	})

	result := CheckResult{
		Category: catalog.CategoryMobile,
		Metadata: WebsiteMetadata{Signals: map[string]bool{"viewport_meta": viewport}},
	}
	if viewport {
		result.Status = StatusPass
		result.Score = Score(1)
		result.FeedbackSummary = "A responsive viewport meta tag is present."
	} else {
		result.Status = StatusError
		result.Score = Score(0)
		result.FeedbackSummary = "No responsive viewport meta tag was found; the site may not render well on phones."
	}
	return result
}

func checkSpeed(latency time.Duration) CheckResult {
	result := CheckResult{
		Category: catalog.CategorySpeed,
		Metadata: WebsiteMetadata{LatencyMS: latency.Milliseconds()},
	}
	switch {
	case latency < speedPassThreshold:
		result.Status = StatusPass
		result.Score = Score(1)
		result.FeedbackSummary = fmt.Sprintf("The page responded quickly (%d ms).", latency.Milliseconds())
	case latency < speedWarnThreshold:
		result.Status = StatusWarning
		result.Score = Score(1)
		result.FeedbackSummary = fmt.Sprintf("The page response was slow (%d ms); consider optimizing.", latency.Milliseconds())
	default:
		result.Status = StatusError
		result.Score = Score(0)
		result.FeedbackSummary = fmt.Sprintf("The page response was very slow (%d ms).", latency.Milliseconds())
	}
	return result
}

func checkSEOBasics(doc *goquery.Document) CheckResult {
	title := strings.TrimSpace(doc.Find("head title").First().Text()) != ""
	description := false
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		description = strings.TrimSpace(content) != ""
	}

	score, status := halfCredit(title, description)
	return CheckResult{
		Category:        catalog.CategorySEO,
		Status:          status,
		Score:           Score(score),
		FeedbackSummary: halfCreditFeedback("page title", title, "meta description", description),
		Metadata: WebsiteMetadata{Signals: map[string]bool{
			"title_found":       title,
			"description_found": description,
		}},
	}
}

func checkSocialLinks(doc *goquery.Document, pageURL string) CheckResult {
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		host := hostOf(href)
		for domain, platform := range socialPlatforms {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				seen[platform] = true
			}
		}
	})

	platforms := make([]string, 0, len(seen))
	for p := range seen {
		platforms = append(platforms, p)
	}

	result := CheckResult{
		Category: catalog.CategorySocial,
		Metadata: WebsiteMetadata{URL: pageURL, Platforms: platforms},
	}
	switch {
	case len(seen) >= 2:
		result.Status = StatusPass
		result.Score = Score(1)
		result.FeedbackSummary = fmt.Sprintf("Links to %d social platforms were found.", len(seen))
	case len(seen) == 1:
		result.Status = StatusWarning
		result.Score = Score(0)
		result.FeedbackSummary = "Only one social platform link was found; add more to broaden reach."
	default:
		result.Status = StatusError
		result.Score = Score(0)
		result.FeedbackSummary = "No social platform links were found on the page."
	}
	return result
}

func checkOpenGraph(doc *goquery.Document) CheckResult {
	ogTitle := doc.Find(`meta[property="og:title"]`).Length() > 0
	ogImage := doc.Find(`meta[property="og:image"]`).Length() > 0

	score, status := halfCredit(ogTitle, ogImage)
	return CheckResult{
		Category:        catalog.CategoryOpenGraph,
		Status:          status,
		Score:           Score(score),
		FeedbackSummary: halfCreditFeedback("og:title tag", ogTitle, "og:image tag", ogImage),
		Metadata: WebsiteMetadata{Signals: map[string]bool{
			"og_title_found": ogTitle,
			"og_image_found": ogImage,
		}},
	}
}

func checkContactInfo(html string) CheckResult {
	phone := phoneRe.MatchString(html)
	email := emailRe.MatchString(html)

	score, status := halfCredit(phone, email)
	return CheckResult{
		Category:        catalog.CategoryContact,
		Status:          status,
		Score:           Score(score),
		FeedbackSummary: halfCreditFeedback("phone number", phone, "email address", email),
		Metadata: WebsiteMetadata{Signals: map[string]bool{
			"phone_found": phone,
			"email_found": email,
		}},
	}
}

// halfCredit scores a category made of two half-point signals, rounding the
// sum to a 0/1 boolean score. One of two present rounds up but surfaces as a
// warning so the operator still sees the gap.
func halfCredit(first, second bool) (float64, Status) {
	total := 0.0
	if first {
		total += 0.5
	}
	if second {
		total += 0.5
	}
	score := math.Round(total)
	switch {
	case first && second:
		return score, StatusPass
	case first || second:
		return score, StatusWarning
	default:
		return score, StatusError
	}
}

func halfCreditFeedback(firstName string, first bool, secondName string, second bool) string {
	switch {
	case first && second:
		return fmt.Sprintf("Both a %s and a %s are present.", firstName, secondName)
	case first:
		return fmt.Sprintf("A %s is present but no %s was found.", firstName, secondName)
	case second:
		return fmt.Sprintf("A %s is present but no %s was found.", secondName, firstName)
	default:
		return fmt.Sprintf("Neither a %s nor a %s was found.", firstName, secondName)
	}
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
}
