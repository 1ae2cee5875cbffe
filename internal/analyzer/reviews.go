package analyzer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jordan/marketing-audit/internal/places"
	"github.com/jordan/marketing-audit/internal/yelp"
)

// GoogleReviews is the subset of the places client used for review presence.
type GoogleReviews interface {
	Configured() bool
	FindListing(ctx context.Context, name, address string) (*places.Listing, error)
}

// YelpReviews is the subset of the Yelp client used for review presence.
type YelpReviews interface {
	Configured() bool
	SearchBusiness(ctx context.Context, name, location string) (*yelp.Business, error)
}

// AnalyzeReviews checks one platform per requested name. Platforms are
// isolated: a failure on one never short-circuits the rest, and the result
// list always matches the request list in length and order. Only Google and
// Yelp have API integrations; every other platform degrades immediately to a
// manual search link.
func AnalyzeReviews(ctx context.Context, businessName, address string, platformNames []string, google GoogleReviews, yelpClient YelpReviews) []CheckResult {
	results := make([]CheckResult, 0, len(platformNames))
	for _, platform := range platformNames {
		switch strings.ToLower(strings.TrimSpace(platform)) {
		case "google":
			results = append(results, checkGoogleReviews(ctx, businessName, address, platform, google))
		case "yelp":
			results = append(results, checkYelpReviews(ctx, businessName, address, platform, yelpClient))
		default:
			results = append(results, manualReviewFallback(businessName, platform, false))
		}
	}
	return results
}

func checkGoogleReviews(ctx context.Context, businessName, address, platform string, google GoogleReviews) CheckResult {
	if google == nil || !google.Configured() {
		return manualReviewFallback(businessName, platform, true)
	}

	listing, err := google.FindListing(ctx, businessName, address)
	if err != nil {
		return reviewLookupFailed(businessName, platform, err)
	}
	if listing == nil {
		return listingAbsent(businessName, platform)
	}
	return listingFound(platform, listing.Name, listing.Rating, listing.ReviewCount, listing.URL)
}

func checkYelpReviews(ctx context.Context, businessName, address, platform string, yelpClient YelpReviews) CheckResult {
	if yelpClient == nil || !yelpClient.Configured() {
		return manualReviewFallback(businessName, platform, true)
	}

	business, err := yelpClient.SearchBusiness(ctx, businessName, address)
	if err != nil {
		return reviewLookupFailed(businessName, platform, err)
	}
	if business == nil {
		return listingAbsent(businessName, platform)
	}
	return listingFound(platform, business.Name, business.Rating, business.ReviewCount, business.URL)
}

// listingFound is a scored positive: the business is present on the platform.
func listingFound(platform, name string, rating float64, reviewCount int, listingURL string) CheckResult {
	result := CheckResult{
		Category:        platform,
		Status:          StatusPass,
		Score:           Score(1),
		FeedbackSummary: fmt.Sprintf("Found on %s: %s with a %.1f rating across %d reviews.", platform, name, rating, reviewCount),
		Metadata: ReviewMetadata{
			Platform:   platform,
			ListingURL: listingURL,
		},
	}
	if rating > 0 {
		result.Rating = &rating
	}
	if reviewCount >= 0 {
		result.TotalReviews = &reviewCount
	}
	return result
}

// listingAbsent is a scored negative: confirmed missing, distinct from
// "could not check".
func listingAbsent(businessName, platform string) CheckResult {
	return CheckResult{
		Category:        platform,
		Status:          StatusError,
		Score:           Score(0),
		FeedbackSummary: fmt.Sprintf("No %s listing was found for this business.", platform),
		Metadata: ReviewMetadata{
			Platform:  platform,
			SearchURL: manualSearchURL(businessName, platform),
		},
	}
}

func reviewLookupFailed(businessName, platform string, cause error) CheckResult {
	return CheckResult{
		Category:        platform,
		Status:          StatusNeutral,
		FeedbackSummary: fmt.Sprintf("Could not check %s automatically; verify manually.", platform),
		Notes:           cause.Error(),
		Metadata: ReviewMetadata{
			Platform:  platform,
			SearchURL: manualSearchURL(businessName, platform),
		},
	}
}

func manualReviewFallback(businessName, platform string, apiKeyMissing bool) CheckResult {
	notes := fmt.Sprintf("No API integration for %s; check the listing manually.", platform)
	if apiKeyMissing {
		notes = fmt.Sprintf("The %s API key is not configured; check the listing manually.", platform)
	}
	return CheckResult{
		Category:        platform,
		Status:          StatusNeutral,
		FeedbackSummary: fmt.Sprintf("%s presence requires a manual check.", platform),
		Notes:           notes,
		Metadata: ReviewMetadata{
			Platform:      platform,
			SearchURL:     manualSearchURL(businessName, platform),
			APIKeyMissing: apiKeyMissing,
		},
	}
}

func manualSearchURL(businessName, platform string) string {
	query := url.QueryEscape(businessName + " " + platform + " reviews")
	return "https://www.google.com/search?q=" + query
}
