package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/marketing-audit/internal/analyzer"
	"github.com/jordan/marketing-audit/internal/catalog"
	"github.com/jordan/marketing-audit/internal/fetch"
	"github.com/jordan/marketing-audit/internal/observability"
	"github.com/jordan/marketing-audit/internal/places"
	"github.com/jordan/marketing-audit/internal/yelp"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a one-off audit without the database",
	Long:  "Runs the website and brand analyzers against a URL and prints the results. With a business name and address, also checks review platforms and local competitors.",
	RunE:  runAudit,
}

var (
	auditURL        string
	auditName       string
	auditAddress    string
	auditIndustry   string
	auditUseBrowser bool
)

func init() {
	auditCmd.Flags().StringVarP(&auditURL, "url", "u", "", "Website URL to audit (required)")
	auditCmd.Flags().StringVar(&auditName, "name", "", "Business name (enables review and competitor checks)")
	auditCmd.Flags().StringVar(&auditAddress, "address", "", "Business street address")
	auditCmd.Flags().StringVar(&auditIndustry, "industry", "", "Industry (dental, real_estate)")
	auditCmd.Flags().BoolVar(&auditUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-rendered sites")

	if err := auditCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	opts := &analyzer.Options{
		FetchOptions: fetch.DefaultOptions(),
		UseBrowser:   auditUseBrowser || cfg.UseBrowser,
		Verbose:      cfg.Verbose,
	}
	printer := observability.NewPrinter(os.Stdout)

	website := analyzer.AnalyzeWebsite(ctx, auditURL, opts)
	printer.PrintCheckResults("Website Performance", website)
	printScore("Website score", website, catalog.ReportTypeWebsite, auditIndustry, printer)

	brand := analyzer.AnalyzeBrand(ctx, auditURL, opts)
	printer.PrintCheckResults("Brand & Logo", brand)
	printScore("Brand score", brand, catalog.ReportTypeBrand, auditIndustry, printer)

	if auditName == "" {
		return nil
	}

	googleClient := places.NewClient(cfg.GoogleMapsAPIKey)
	yelpClient := yelp.NewClient(cfg.YelpAPIKey)

	platforms := reviewPlatforms(auditIndustry)
	reviews := analyzer.AnalyzeReviews(ctx, auditName, auditAddress, platforms, googleClient, yelpClient)
	printer.PrintCheckResults("Online Reviews", reviews)

	competitors := analyzer.AnalyzeCompetitors(ctx, auditName, auditAddress, auditIndustry, googleClient, opts)
	printer.PrintCheckResults("Local Competitors", competitors)

	return nil
}

func printScore(title string, results []analyzer.CheckResult, reportType, industry string, printer *observability.Printer) {
	var cfg catalog.ReportTypeConfig
	for _, c := range catalog.Configs(industry) {
		if c.ReportType == reportType {
			cfg = c
			break
		}
	}

	total := 0.0
	scored := false
	for _, result := range results {
		if result.Score != nil {
			total += *result.Score
			scored = true
		}
	}
	if !scored {
		printer.PrintScoreSummary(title, nil, cfg.MaxScore(), "")
		return
	}
	printer.PrintScoreSummary(title, &total, cfg.MaxScore(), "")
}

func reviewPlatforms(industry string) []string {
	for _, cfg := range catalog.Configs(industry) {
		if cfg.ReportType == catalog.ReportTypeReviews {
			names := make([]string, len(cfg.Categories))
			for i, c := range cfg.Categories {
				names[i] = c.Category
			}
			return names
		}
	}
	return nil
}
