// Package catalog defines the industry-parameterized report taxonomy.
// It is the single source of truth for which report types a report set
// contains and how many points each category is worth. Changing an
// industry's lineup is a data change here, not a logic change elsewhere.
package catalog

// Industry identifiers understood by the catalog. Unknown industries fall
// back to the generic configuration.
const (
	IndustryDental     = "dental"
	IndustryRealEstate = "real_estate"
)

// Report type identifiers. The first four have matching analyzers; the
// industry-specific types are seeded for manual review.
const (
	ReportTypeWebsite        = "website"
	ReportTypeBrand          = "brand_logo"
	ReportTypeReviews        = "online_reviews"
	ReportTypeCompetitors    = "competitors"
	ReportTypeLocalListings  = "local_listings"
	ReportTypeListingPortals = "listing_portals"
)

// Website analyzer categories. Each is worth a single boolean point.
const (
	CategorySSL       = "SSL Certificate"
	CategoryMobile    = "Mobile Friendliness"
	CategorySpeed     = "Website Speed"
	CategorySEO       = "SEO Basics"
	CategorySocial    = "Social Media Links"
	CategoryOpenGraph = "Open Graph Tags"
	CategoryContact   = "Contact Information"
)

// Brand analyzer categories. Automated ones are scored on a 1-5 scale;
// the manual-only ones are seeded unscored and left to human judgment.
const (
	CategoryLogoUsage       = "Logo Usage"
	CategoryLogoConsistency = "Logo Consistency"
	CategoryLogoLegibility  = "Logo Legibility"
	CategoryColorPalette    = "Color Palette"
	CategoryTypography      = "Typography"
	CategoryPhotography     = "Photography"
	CategoryBrandVoice      = "Brand Voice & Messaging"
	CategorySignage         = "Signage & Onsite Branding"
	CategorySocialBranding  = "Social Media Branding"
	CategoryBrandCohesion   = "Overall Brand Cohesion"
)

// CategoryTemplate pairs a category name with the ceiling used in tier math.
type CategoryTemplate struct {
	Category string
	MaxScore int
}

// ReportTypeConfig describes one report type: its identifier, a display
// title, and the ordered category templates seeded into new reports.
type ReportTypeConfig struct {
	ReportType string
	Title      string
	Categories []CategoryTemplate
}

// MaxScore sums the category ceilings for this report type.
func (c ReportTypeConfig) MaxScore() int {
	total := 0
	for _, cat := range c.Categories {
		total += cat.MaxScore
	}
	return total
}

// Category returns the template for the named category, if present.
func (c ReportTypeConfig) Category(name string) (CategoryTemplate, bool) {
	for _, cat := range c.Categories {
		if cat.Category == name {
			return cat, true
		}
	}
	return CategoryTemplate{}, false
}

func websiteConfig() ReportTypeConfig {
	return ReportTypeConfig{
		ReportType: ReportTypeWebsite,
		Title:      "Website Performance",
		Categories: []CategoryTemplate{
			{Category: CategorySSL, MaxScore: 1},
			{Category: CategoryMobile, MaxScore: 1},
			{Category: CategorySpeed, MaxScore: 1},
			{Category: CategorySEO, MaxScore: 1},
			{Category: CategorySocial, MaxScore: 1},
			{Category: CategoryOpenGraph, MaxScore: 1},
			{Category: CategoryContact, MaxScore: 1},
		},
	}
}

func brandConfig() ReportTypeConfig {
	return ReportTypeConfig{
		ReportType: ReportTypeBrand,
		Title:      "Brand & Logo",
		Categories: []CategoryTemplate{
			{Category: CategoryLogoUsage, MaxScore: 5},
			{Category: CategoryLogoConsistency, MaxScore: 5},
			{Category: CategoryLogoLegibility, MaxScore: 5},
			{Category: CategoryColorPalette, MaxScore: 5},
			{Category: CategoryTypography, MaxScore: 5},
			{Category: CategoryPhotography, MaxScore: 5},
			{Category: CategoryBrandVoice, MaxScore: 5},
			{Category: CategorySignage, MaxScore: 5},
			{Category: CategorySocialBranding, MaxScore: 5},
			{Category: CategoryBrandCohesion, MaxScore: 5},
		},
	}
}

func reviewsConfig(platforms ...string) ReportTypeConfig {
	cfg := ReportTypeConfig{
		ReportType: ReportTypeReviews,
		Title:      "Online Reviews",
	}
	for _, p := range platforms {
		cfg.Categories = append(cfg.Categories, CategoryTemplate{Category: p, MaxScore: 1})
	}
	return cfg
}

func competitorsConfig() ReportTypeConfig {
	return ReportTypeConfig{
		ReportType: ReportTypeCompetitors,
		Title:      "Local Competitors",
		Categories: []CategoryTemplate{
			{Category: "Competitor 1", MaxScore: 1},
			{Category: "Competitor 2", MaxScore: 1},
			{Category: "Competitor 3", MaxScore: 1},
		},
	}
}

// Configs returns the ordered report type configurations for an industry.
// Unknown industries receive the generic lineup.
func Configs(industry string) []ReportTypeConfig {
	switch industry {
	case IndustryDental:
		return []ReportTypeConfig{
			websiteConfig(),
			brandConfig(),
			reviewsConfig("Google", "Yelp", "Facebook", "Healthgrades"),
			competitorsConfig(),
			{
				ReportType: ReportTypeLocalListings,
				Title:      "Local Listings",
				Categories: []CategoryTemplate{
					{Category: "Google Business Profile", MaxScore: 1},
					{Category: "Bing Places", MaxScore: 1},
					{Category: "Apple Maps", MaxScore: 1},
				},
			},
		}
	case IndustryRealEstate:
		return []ReportTypeConfig{
			websiteConfig(),
			brandConfig(),
			reviewsConfig("Google", "Yelp", "Facebook", "Zillow"),
			competitorsConfig(),
			{
				ReportType: ReportTypeListingPortals,
				Title:      "Listing Portals",
				Categories: []CategoryTemplate{
					{Category: "Zillow Profile", MaxScore: 1},
					{Category: "Realtor.com Profile", MaxScore: 1},
					{Category: "Trulia Profile", MaxScore: 1},
				},
			},
		}
	default:
		return []ReportTypeConfig{
			websiteConfig(),
			brandConfig(),
			reviewsConfig("Google", "Yelp", "Facebook"),
			competitorsConfig(),
		}
	}
}

// WebsiteCategories returns the ordered website analyzer categories.
func WebsiteCategories() []string {
	cats := websiteConfig().Categories
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Category
	}
	return names
}

// BrandCategories returns the ordered brand analyzer categories.
func BrandCategories() []string {
	cats := brandConfig().Categories
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Category
	}
	return names
}
