package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigs_GenericFallback(t *testing.T) {
	configs := Configs("plumbing")
	require.Len(t, configs, 4)
	assert.Equal(t, ReportTypeWebsite, configs[0].ReportType)
	assert.Equal(t, ReportTypeBrand, configs[1].ReportType)
	assert.Equal(t, ReportTypeReviews, configs[2].ReportType)
	assert.Equal(t, ReportTypeCompetitors, configs[3].ReportType)
}

func TestConfigs_Dental(t *testing.T) {
	configs := Configs(IndustryDental)
	require.Len(t, configs, 5)

	var reviews ReportTypeConfig
	for _, c := range configs {
		if c.ReportType == ReportTypeReviews {
			reviews = c
		}
	}
	_, ok := reviews.Category("Healthgrades")
	assert.True(t, ok, "dental reviews config should include Healthgrades")
}

func TestConfigs_RealEstate(t *testing.T) {
	configs := Configs(IndustryRealEstate)
	require.Len(t, configs, 5)
	assert.Equal(t, ReportTypeListingPortals, configs[4].ReportType)
}

func TestReportTypeConfig_MaxScore(t *testing.T) {
	configs := Configs("generic")
	for _, c := range configs {
		switch c.ReportType {
		case ReportTypeWebsite:
			assert.Equal(t, 7, c.MaxScore())
		case ReportTypeBrand:
			assert.Equal(t, 50, c.MaxScore())
		case ReportTypeReviews:
			assert.Equal(t, 3, c.MaxScore())
		case ReportTypeCompetitors:
			assert.Equal(t, 3, c.MaxScore())
		}
	}
}

func TestWebsiteCategories_Ordered(t *testing.T) {
	cats := WebsiteCategories()
	require.Len(t, cats, 7)
	assert.Equal(t, CategorySSL, cats[0])
}

func TestBrandCategories_Count(t *testing.T) {
	assert.Len(t, BrandCategories(), 10)
}
