package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/fetch"
)

// manualBrandCategories are deliberately never scored by automation: judging
// them requires looking at the brand, not counting markup. They are emitted
// neutral and unscored for human review.
var manualBrandCategories = map[string]bool{
	catalog.CategoryLogoConsistency: true,
	catalog.CategoryLogoLegibility:  true,
	catalog.CategoryBrandVoice:      true,
	catalog.CategorySignage:         true,
	catalog.CategoryBrandCohesion:   true,
}

var (
	hexColorRe   = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})\b`)
	rgbColorRe   = regexp.MustCompile(`rgba?\([^)]+\)`)
	customPropRe = regexp.MustCompile(`--[a-zA-Z][a-zA-Z0-9-]*\s*:`)
	fontFamilyRe = regexp.MustCompile(`font-family\s*:\s*([^;}"']+)`)
)

// webfontHosts identify loaded webfont services.
var webfontHosts = []string{
	"fonts.googleapis.com",
	"fonts.bunny.net",
	"use.typekit.net",
	"fonts.adobe.com",
}

// AnalyzeBrand fetches a URL once and runs the ten brand heuristics. Five
// categories are automated on a 1-5 scale; the rest are emitted unscored for
// manual judgment. An unreachable site degrades the entire category set in
// one pass, since a single page fetch underlies every check.
func AnalyzeBrand(ctx context.Context, rawURL string, opts *Options) []CheckResult {
	if opts == nil {
		opts = &Options{}
	}

	normalized := fetch.NormalizeURL(rawURL)
	result, err := fetch.URL(ctx, normalized, opts.FetchOptions)
	if err != nil {
		return brandUnreachable(normalized, err)
	}

	html := result.HTML
	if opts.UseBrowser && fetch.LooksLikeAppShell(html) {
		if rendered, berr := fetch.BrowserSimple(ctx, normalized, opts.Verbose); berr == nil {
			html = rendered
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return brandUnreachable(normalized, err)
	}

	results := make([]CheckResult, 0, len(catalog.BrandCategories()))
	for _, category := range catalog.BrandCategories() {
		if manualBrandCategories[category] {
			results = append(results, manualBrandCategory(category))
			continue
		}
		switch category {
		case catalog.CategoryLogoUsage:
			results = append(results, checkLogoUsage(doc))
		case catalog.CategoryColorPalette:
			results = append(results, checkColorPalette(html))
		case catalog.CategoryTypography:
			results = append(results, checkTypography(doc, html))
		case catalog.CategoryPhotography:
			results = append(results, checkPhotography(doc))
		case catalog.CategorySocialBranding:
			results = append(results, checkSocialBranding(doc))
		}
	}
	return results
}

func brandUnreachable(urlStr string, cause error) []CheckResult {
	note := cause.Error()
	results := make([]CheckResult, 0, len(catalog.BrandCategories()))
	for _, category := range catalog.BrandCategories() {
		results = append(results, CheckResult{
			Category:        category,
			Status:          StatusNeutral,
			FeedbackSummary: "Could not evaluate: the website was unreachable.",
			Notes:           note,
			Metadata:        BrandMetadata{URL: urlStr},
		})
	}
	return results
}

func manualBrandCategory(category string) CheckResult {
	return CheckResult{
		Category:        category,
		Status:          StatusNeutral,
		FeedbackSummary: "Requires visual review by a brand specialist.",
		Notes:           "This category cannot be judged from markup; score it manually after reviewing the brand materials.",
	}
}

// scaleResult maps a 1-5 score to its tier: 4+ pass, 3 warning, below error.
func scaleResult(category string, score float64, feedback string, meta BrandMetadata) CheckResult {
	status := StatusError
	switch {
	case score >= 4:
		status = StatusPass
	case score >= 3:
		status = StatusWarning
	}
	return CheckResult{
		Category:        category,
		Status:          status,
		Score:           Score(score),
		FeedbackSummary: feedback,
		Metadata:        meta,
	}
}

func checkLogoUsage(doc *goquery.Document) CheckResult {
	logoImages := 0
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt, _ := s.Attr("alt")
		src, _ := s.Attr("src")
		if strings.Contains(strings.ToLower(alt), "logo") || strings.Contains(strings.ToLower(src), "logo") {
			logoImages++
		}
	})
	svgCount := doc.Find("svg").Length()
	faviconCount := doc.Find(`link[rel*="icon"]`).Length()

	score := 1.0
	if logoImages > 0 {
		score += 2
	}
	if faviconCount > 0 {
		score++
	}
	if svgCount > 0 {
		score++
	}
	if score > 5 {
		score = 5
	}

	feedback := "No recognizable logo image or favicon was found."
	if logoImages > 0 && faviconCount > 0 {
		feedback = "A logo image and favicon are both in place."
	} else if logoImages > 0 {
		feedback = "A logo image was found, but no favicon is configured."
	} else if faviconCount > 0 {
		feedback = "A favicon is configured, but no logo image was detected on the page."
	}

	return scaleResult(catalog.CategoryLogoUsage, score, feedback, BrandMetadata{Counts: map[string]int{
		"logo_images": logoImages,
		"svg_count":   svgCount,
		"favicons":    faviconCount,
	}})
}

func checkColorPalette(html string) CheckResult {
	distinct := map[string]bool{}
	for _, m := range hexColorRe.FindAllString(html, -1) {
		distinct[strings.ToLower(m)] = true
	}
	for _, m := range rgbColorRe.FindAllString(html, -1) {
		distinct[strings.ToLower(strings.ReplaceAll(m, " ", ""))] = true
	}
	customProps := len(customPropRe.FindAllString(html, -1))

	var score float64
	switch {
	case len(distinct) == 0:
		// Styles likely live in external CSS; nothing to judge either way.
		score = 3
	case len(distinct) <= 12:
		score = 5
	case len(distinct) <= 24:
		score = 4
	case len(distinct) <= 40:
		score = 3
	default:
		score = 2
	}
	if customProps >= 5 && score < 5 {
		// A design-token layer is strong evidence of a managed palette.
		score++
	}

	feedback := fmt.Sprintf("%d distinct color literals were found in the markup.", len(distinct))
	if customProps >= 5 {
		feedback += fmt.Sprintf(" %d CSS custom properties suggest a managed design system.", customProps)
	}

	return scaleResult(catalog.CategoryColorPalette, score, feedback, BrandMetadata{Counts: map[string]int{
		"distinct_colors": len(distinct),
		"custom_props":    customProps,
	}})
}

func checkTypography(doc *goquery.Document, html string) CheckResult {
	families := map[string]bool{}
	for _, m := range fontFamilyRe.FindAllStringSubmatch(html, -1) {
		primary := strings.TrimSpace(strings.Split(m[1], ",")[0])
		primary = strings.Trim(primary, `"' `)
		if primary != "" {
			families[strings.ToLower(primary)] = true
		}
	}

	webfont := false
	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		for _, host := range webfontHosts {
			if strings.Contains(href, host) {
				webfont = true
			}
		}
	})

	var score float64
	switch {
	case len(families) == 0:
		score = 3
	case len(families) <= 2:
		score = 5
	case len(families) == 3:
		score = 4
	case len(families) == 4:
		score = 3
	default:
		score = 2
	}
	if webfont && score < 5 {
		score++
	}

	feedback := fmt.Sprintf("%d distinct font families are declared in the markup.", len(families))
	if webfont {
		feedback += " A webfont service is loaded."
	}

	webfontCount := 0
	if webfont {
		webfontCount = 1
	}
	return scaleResult(catalog.CategoryTypography, score, feedback, BrandMetadata{Counts: map[string]int{
		"font_families": len(families),
		"webfonts":      webfontCount,
	}})
}

func checkPhotography(doc *goquery.Document) CheckResult {
	images := doc.Find("img")
	total := images.Length()
	withAlt := 0
	lazy := 0
	images.Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			withAlt++
		}
		if loading, ok := s.Attr("loading"); ok && loading == "lazy" {
			lazy++
		}
	})

	if total == 0 {
		return scaleResult(catalog.CategoryPhotography, 1,
			"No images were found on the page.",
			BrandMetadata{Counts: map[string]int{"images": 0}})
	}

	score := 2.0
	if total >= 3 {
		score++
	}
	if float64(withAlt)/float64(total) >= 0.7 {
		score++
	}
	if lazy > 0 {
		score++
	}

	feedback := fmt.Sprintf("%d images found; %d carry alt text.", total, withAlt)
	if lazy > 0 {
		feedback += " Lazy loading is in use."
	}

	return scaleResult(catalog.CategoryPhotography, score, feedback, BrandMetadata{Counts: map[string]int{
		"images":     total,
		"with_alt":   withAlt,
		"lazy_count": lazy,
	}})
}

func checkSocialBranding(doc *goquery.Document) CheckResult {
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

	var score float64
	switch {
	case len(seen) >= 3:
		score = 5
	case len(seen) == 2:
		score = 4
	case len(seen) == 1:
		score = 3
	default:
		score = 1
	}

	feedback := fmt.Sprintf("Links to %d social platforms were found.", len(seen))
	if len(seen) == 0 {
		feedback = "No social platform links were found on the page."
	}

	return scaleResult(catalog.CategorySocialBranding, score, feedback, BrandMetadata{Counts: map[string]int{
		"platforms": len(seen),
	}})
}
