package analyzer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/places"
)

// competitorSlots is the fixed output arity: downstream rows always expect
// exactly three competitor items, so shortfalls are padded with placeholders.
const competitorSlots = 3

// nearbyRadiusMeters is roughly a 10 mile search radius.
const nearbyRadiusMeters = 16093

const metersPerMile = 1609.34

// PlacesAPI is the subset of the places client the competitors analyzer uses.
type PlacesAPI interface {
	Configured() bool
	Geocode(ctx context.Context, address string) (*places.Coordinates, error)
	NearbySearch(ctx context.Context, coords places.Coordinates, radiusMeters int, placeType string) ([]places.Place, error)
	PlaceDetails(ctx context.Context, placeID string) (*places.Details, error)
}

// AnalyzeCompetitors geocodes the client's address, finds the closest
// same-industry businesses, and runs the website heuristics against each
// competitor's site. The result always has exactly three slots.
func AnalyzeCompetitors(ctx context.Context, clientName, address, industry string, api PlacesAPI, opts *Options) []CheckResult {
	if api == nil || !api.Configured() {
		return competitorPlaceholders("The places API key is not configured; identify competitors manually.")
	}
	if strings.TrimSpace(address) == "" {
		return competitorPlaceholders("No business address is on file; identify competitors manually.")
	}

	coords, err := api.Geocode(ctx, address)
	if err != nil {
		return competitorPlaceholders(fmt.Sprintf("Could not geocode the business address: %v", err))
	}

	nearby, err := api.NearbySearch(ctx, *coords, nearbyRadiusMeters, industryPlaceType(industry))
	if err != nil {
		return competitorPlaceholders(fmt.Sprintf("Nearby business search failed: %v", err))
	}

	competitors := excludeClient(nearby, clientName)
	sort.Slice(competitors, func(i, j int) bool {
		return haversineMeters(*coords, competitors[i].Location) < haversineMeters(*coords, competitors[j].Location)
	})
	if len(competitors) > competitorSlots {
		competitors = competitors[:competitorSlots]
	}

	results := make([]CheckResult, competitorSlots)

	// Each competitor's analysis is independent; run them concurrently but
	// fault-isolated, so one failure never cancels the other slots.
	var g errgroup.Group
	for i, competitor := range competitors {
		g.Go(func() error {
			results[i] = analyzeCompetitor(ctx, i, competitor, *coords, api, opts)
			return nil
		})
	}
	_ = g.Wait()

	for i := len(competitors); i < competitorSlots; i++ {
		results[i] = competitorPlaceholder(i, "No additional competitor was found nearby.")
	}
	return results
}

func analyzeCompetitor(ctx context.Context, slot int, competitor places.Place, origin places.Coordinates, api PlacesAPI, opts *Options) CheckResult {
	distance := haversineMeters(origin, competitor.Location)
	listingsScore := 1.0 // presence on the places platform is itself one listing

	meta := CompetitorMetadata{
		Name:                 competitor.Name,
		PlaceID:              competitor.PlaceID,
		DistanceMeters:       &distance,
		ListingsReviewsScore: &listingsScore,
	}
	if competitor.Rating > 0 {
		rating := competitor.Rating
		meta.Rating = &rating
		count := competitor.ReviewCount
		meta.ReviewCount = &count
	}

	feedback := fmt.Sprintf("%s is %.1f miles away and holds a %.1f rating across %d reviews.",
		competitor.Name, distance/metersPerMile, competitor.Rating, competitor.ReviewCount)

	details, err := api.PlaceDetails(ctx, competitor.PlaceID)
	if err == nil && details.Website != "" {
		meta.Website = details.Website
		websiteScore := competitorWebsiteScore(ctx, details.Website, opts)
		if websiteScore != nil {
			meta.WebsiteScore = websiteScore
			feedback += fmt.Sprintf(" Their website scored %.0f on the website checks.", *websiteScore)
		} else {
			feedback += " Could not analyze the competitor's website."
		}
	} else {
		feedback += " No website is listed for this competitor."
	}

	result := CheckResult{
		Category:        competitorCategory(slot),
		Status:          StatusPass,
		Score:           Score(listingsScore),
		FeedbackSummary: feedback,
		Metadata:        meta,
	}
	if meta.Rating != nil {
		result.Rating = meta.Rating
		result.TotalReviews = meta.ReviewCount
	}
	return result
}

// competitorWebsiteScore runs the website heuristics against a competitor's
// site and sums the category scores into a single aggregate figure. A failed
// analysis returns nil rather than aborting the slot.
func competitorWebsiteScore(ctx context.Context, website string, opts *Options) *float64 {
	checks := AnalyzeWebsite(ctx, website, opts)
	total := 0.0
	scored := false
	for _, check := range checks {
		if check.Score != nil {
			total += *check.Score
			scored = true
		}
	}
	if !scored {
		return nil
	}
	if total > 50 {
		total = 50
	}
	return &total
}

func competitorPlaceholders(note string) []CheckResult {
	results := make([]CheckResult, competitorSlots)
	for i := range results {
		results[i] = competitorPlaceholder(i, note)
	}
	return results
}

func competitorPlaceholder(slot int, note string) CheckResult {
	return CheckResult{
		Category:        competitorCategory(slot),
		Status:          StatusNeutral,
		FeedbackSummary: "Competitor analysis is pending manual research.",
		Notes:           note,
	}
}

func competitorCategory(slot int) string {
	return fmt.Sprintf("Competitor %d", slot+1)
}

// industryPlaceType maps an industry to the provider's place type taxonomy.
func industryPlaceType(industry string) string {
	switch industry {
	case catalog.IndustryDental:
		return "dentist"
	case catalog.IndustryRealEstate:
		return "real_estate_agency"
	default:
		return "establishment"
	}
}

// excludeClient filters out results whose normalized name overlaps the
// client's own, in either direction, so the prospect never appears as its
// own competitor.
func excludeClient(nearby []places.Place, clientName string) []places.Place {
	normalizedClient := normalizeName(clientName)
	filtered := make([]places.Place, 0, len(nearby))
	for _, p := range nearby {
		candidate := normalizeName(p.Name)
		if normalizedClient != "" && candidate != "" &&
			(strings.Contains(candidate, normalizedClient) || strings.Contains(normalizedClient, candidate)) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// normalizeName lowercases and strips everything but letters and digits.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const earthRadiusMeters = 6371000

func haversineMeters(a, b places.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
