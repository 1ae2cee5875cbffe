package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/marketing-audit/internal/analyzer"
	"github.com/jordan/marketing-audit/internal/db"
	"github.com/jordan/marketing-audit/internal/fetch"
	"github.com/jordan/marketing-audit/internal/seeding"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a company and its seeded report set",
	Long:  "Creates a company record, creates a report set from the industry catalog, runs the website analyzer when a URL is given, and prints the new IDs.",
	RunE:  runSeed,
}

var (
	seedName       string
	seedIndustry   string
	seedURL        string
	seedAddress    string
	seedUseBrowser bool
)

func init() {
	seedCmd.Flags().StringVar(&seedName, "name", "", "Business name (required)")
	seedCmd.Flags().StringVar(&seedIndustry, "industry", "", "Industry (dental, real_estate)")
	seedCmd.Flags().StringVarP(&seedURL, "url", "u", "", "Website URL")
	seedCmd.Flags().StringVar(&seedAddress, "address", "", "Business street address")
	seedCmd.Flags().BoolVar(&seedUseBrowser, "use-browser", false, "Use a headless browser for JavaScript-rendered sites")

	if err := seedCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}

	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	company := &db.Company{
		Name:     seedName,
		Industry: seedIndustry,
	}
	if seedURL != "" {
		company.WebsiteURL = &seedURL
	}
	if seedAddress != "" {
		company.Address = &seedAddress
	}
	if err := database.CreateCompany(ctx, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	set := &db.ReportSet{CompanyID: company.ID}
	if err := database.CreateReportSet(ctx, set); err != nil {
		return fmt.Errorf("failed to create report set: %w", err)
	}

	opts := &analyzer.Options{
		FetchOptions: fetch.DefaultOptions(),
		UseBrowser:   seedUseBrowser || cfg.UseBrowser,
		Verbose:      cfg.Verbose,
	}
	if err := seeding.SeedReports(ctx, database, set.ID, seedIndustry, seedURL, opts); err != nil {
		return fmt.Errorf("failed to seed report set: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Company:    %s\n", company.ID)
	_, _ = fmt.Fprintf(os.Stdout, "Report set: %s\n", set.ID)
	return nil
}
