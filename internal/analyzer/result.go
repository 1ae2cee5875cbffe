// Package analyzer inspects a prospect's public web presence and produces
// normalized category results. Each analyzer shares the same degradation
// contract: unreachable resources and missing configuration yield unscored
// neutral results instead of errors, so a failed check never aborts its
// siblings.
package analyzer

// Status classifies a single category result.
type Status string

const (
	// StatusPass indicates the category met its automated bar.
	StatusPass Status = "pass"
	// StatusWarning indicates partial credit or a borderline signal.
	StatusWarning Status = "warning"
	// StatusError indicates a confirmed negative outcome.
	StatusError Status = "error"
	// StatusNeutral indicates the category could not be evaluated
	// automatically (missing config, unreachable resource, or a
	// deliberately manual-only category).
	StatusNeutral Status = "neutral"
)

// CheckResult is one category's outcome. A nil Score means "not evaluated";
// zero is a valid scored value distinct from nil.
type CheckResult struct {
	Category        string
	Status          Status
	Score           *float64
	Rating          *float64
	TotalReviews    *int
	FeedbackSummary string
	Notes           string
	Metadata        Metadata
}

// Metadata is the typed per-analyzer fact shape. Concrete shapes convert to
// the generic key-value bag only at the persistence boundary.
type Metadata interface {
	Bag() map[string]any
}

// WebsiteMetadata carries the structured facts behind a website check.
type WebsiteMetadata struct {
	URL       string
	LatencyMS int64
	Signals   map[string]bool
	Platforms []string
}

// Bag converts the metadata to the generic storage bag.
func (m WebsiteMetadata) Bag() map[string]any {
	bag := map[string]any{}
	if m.URL != "" {
		bag["url"] = m.URL
	}
	if m.LatencyMS > 0 {
		bag["latency_ms"] = m.LatencyMS
	}
	for k, v := range m.Signals {
		bag[k] = v
	}
	if len(m.Platforms) > 0 {
		bag["platforms"] = m.Platforms
	}
	return bag
}

// BrandMetadata carries the detected counts backing a 1-5 brand score.
type BrandMetadata struct {
	URL    string
	Counts map[string]int
}

// Bag converts the metadata to the generic storage bag.
func (m BrandMetadata) Bag() map[string]any {
	bag := map[string]any{}
	if m.URL != "" {
		bag["url"] = m.URL
	}
	for k, v := range m.Counts {
		bag[k] = v
	}
	return bag
}

// ReviewMetadata carries per-platform listing facts.
type ReviewMetadata struct {
	Platform      string
	SearchURL     string
	ListingURL    string
	APIKeyMissing bool
}

// Bag converts the metadata to the generic storage bag.
func (m ReviewMetadata) Bag() map[string]any {
	bag := map[string]any{"platform": m.Platform}
	if m.SearchURL != "" {
		bag["search_url"] = m.SearchURL
	}
	if m.ListingURL != "" {
		bag["listing_url"] = m.ListingURL
	}
	if m.APIKeyMissing {
		bag["api_key_missing"] = true
	}
	return bag
}

// CompetitorMetadata carries one competitor slot's facts.
type CompetitorMetadata struct {
	Name                 string
	Website              string
	PlaceID              string
	Rating               *float64
	ReviewCount          *int
	DistanceMeters       *float64
	WebsiteScore         *float64
	ListingsReviewsScore *float64
}

// Bag converts the metadata to the generic storage bag.
func (m CompetitorMetadata) Bag() map[string]any {
	bag := map[string]any{}
	if m.Name != "" {
		bag["name"] = m.Name
	}
	if m.Website != "" {
		bag["website"] = m.Website
	}
	if m.PlaceID != "" {
		bag["place_id"] = m.PlaceID
	}
	if m.Rating != nil {
		bag["rating"] = *m.Rating
	}
	if m.ReviewCount != nil {
		bag["review_count"] = *m.ReviewCount
	}
	if m.DistanceMeters != nil {
		bag["distance_meters"] = *m.DistanceMeters
	}
	if m.WebsiteScore != nil {
		bag["website_score"] = *m.WebsiteScore
	}
	if m.ListingsReviewsScore != nil {
		bag["listings_reviews_score"] = *m.ListingsReviewsScore
	}
	return bag
}

// Score returns a pointer to v, for populating optional score fields.
func Score(v float64) *float64 {
	return &v
}
