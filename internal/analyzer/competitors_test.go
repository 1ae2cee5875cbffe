package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/places"
)

type fakePlaces struct {
	configured bool
	coords     *places.Coordinates
	geocodeErr error
	nearby     []places.Place
	nearbyErr  error
	details    map[string]*places.Details
}

func (f *fakePlaces) Configured() bool { return f.configured }

func (f *fakePlaces) Geocode(context.Context, string) (*places.Coordinates, error) {
	return f.coords, f.geocodeErr
}

func (f *fakePlaces) NearbySearch(context.Context, places.Coordinates, int, string) ([]places.Place, error) {
	return f.nearby, f.nearbyErr
}

func (f *fakePlaces) PlaceDetails(_ context.Context, placeID string) (*places.Details, error) {
	if d, ok := f.details[placeID]; ok {
		return d, nil
	}
	return nil, errors.New("place not found")
}

func TestAnalyzeCompetitorsUnconfigured(t *testing.T) {
	results := AnalyzeCompetitors(context.Background(), "Bright Smiles Dental", "12 Main St, Springfield",
		catalog.IndustryDental, &fakePlaces{}, nil)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, competitorCategory(i), r.Category)
		assert.Equal(t, StatusNeutral, r.Status)
		assert.Nil(t, r.Score)
		assert.NotEmpty(t, r.Notes)
	}
}

func TestAnalyzeCompetitorsNoAddress(t *testing.T) {
	results := AnalyzeCompetitors(context.Background(), "Bright Smiles Dental", "  ",
		catalog.IndustryDental, &fakePlaces{configured: true}, nil)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Equal(t, StatusNeutral, r.Status)
		assert.Nil(t, r.Score)
	}
}

func TestAnalyzeCompetitorsGeocodeFailure(t *testing.T) {
	api := &fakePlaces{configured: true, geocodeErr: errors.New("no results")}

	results := AnalyzeCompetitors(context.Background(), "Bright Smiles Dental", "12 Main St",
		catalog.IndustryDental, api, nil)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Equal(t, StatusNeutral, r.Status)
		assert.Contains(t, r.Notes, "geocode")
	}
}

func TestAnalyzeCompetitorsExcludesClientAndPads(t *testing.T) {
	api := &fakePlaces{
		configured: true,
		coords:     &places.Coordinates{Lat: 39.78, Lng: -89.65},
		nearby: []places.Place{
			{PlaceID: "self", Name: "Bright Smiles Dental", Location: places.Coordinates{Lat: 39.78, Lng: -89.65}},
			{PlaceID: "rival", Name: "Springfield Family Dentistry", Rating: 4.5, ReviewCount: 88,
				Location: places.Coordinates{Lat: 39.79, Lng: -89.66}},
		},
	}

	results := AnalyzeCompetitors(context.Background(), "Bright Smiles Dental", "12 Main St",
		catalog.IndustryDental, api, nil)
	require.Len(t, results, 3)

	first := results[0]
	assert.Equal(t, StatusPass, first.Status)
	require.NotNil(t, first.Score)
	assert.Equal(t, 1.0, *first.Score)
	require.NotNil(t, first.Rating)
	assert.Equal(t, 4.5, *first.Rating)
	assert.Equal(t, "Springfield Family Dentistry", first.Metadata.Bag()["name"])

	// The prospect never appears as its own competitor, and empty slots are
	// padded so the report always has three rows.
	for _, r := range results[1:] {
		assert.Equal(t, StatusNeutral, r.Status)
		assert.Nil(t, r.Score)
	}
}

func TestAnalyzeCompetitorsSortsByDistance(t *testing.T) {
	origin := places.Coordinates{Lat: 39.78, Lng: -89.65}
	api := &fakePlaces{
		configured: true,
		coords:     &origin,
		nearby: []places.Place{
			{PlaceID: "far", Name: "Far Dental", Location: places.Coordinates{Lat: 39.90, Lng: -89.80}},
			{PlaceID: "near", Name: "Near Dental", Location: places.Coordinates{Lat: 39.781, Lng: -89.651}},
			{PlaceID: "mid", Name: "Mid Dental", Location: places.Coordinates{Lat: 39.82, Lng: -89.70}},
			{PlaceID: "extra", Name: "Extra Dental", Location: places.Coordinates{Lat: 39.95, Lng: -89.95}},
		},
	}

	results := AnalyzeCompetitors(context.Background(), "Bright Smiles Dental", "12 Main St",
		catalog.IndustryDental, api, nil)
	require.Len(t, results, 3)

	assert.Equal(t, "Near Dental", results[0].Metadata.Bag()["name"])
	assert.Equal(t, "Mid Dental", results[1].Metadata.Bag()["name"])
	assert.Equal(t, "Far Dental", results[2].Metadata.Bag()["name"])
}

func TestExcludeClient(t *testing.T) {
	nearby := []places.Place{
		{Name: "Bright Smiles Dental"},
		{Name: "Bright Smiles Dental - Downtown"},
		{Name: "Other Practice"},
	}

	filtered := excludeClient(nearby, "Bright Smiles Dental")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Other Practice", filtered[0].Name)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "brightsmilesdental", normalizeName("Bright Smiles Dental!"))
	assert.Equal(t, "", normalizeName("  --  "))
}

func TestIndustryPlaceType(t *testing.T) {
	assert.Equal(t, "dentist", industryPlaceType(catalog.IndustryDental))
	assert.Equal(t, "real_estate_agency", industryPlaceType(catalog.IndustryRealEstate))
	assert.Equal(t, "establishment", industryPlaceType("unknown"))
}
