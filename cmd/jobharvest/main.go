package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"jobharvest/internal/browser"
	"jobharvest/internal/config"
	"jobharvest/internal/database"
	"jobharvest/internal/linkfilter"
	"jobharvest/internal/logging"
	"jobharvest/internal/pdfsites"
	"jobharvest/internal/reporter"
	"jobharvest/internal/runner"
	"jobharvest/internal/sitesfile"
	"jobharvest/internal/store"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "jobharvest",
		Usage: "Multi-site job scraper (Amazon, P&G Careers, LinkedIn, generic career sites)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "headful",
				Usage: "Run browser in headful mode (show window)",
			},
			&cli.StringFlag{
				Name:  "sites",
				Usage: "Comma-separated site types to scrape (e.g. amazon,pg_careers). Default: all enabled",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output Excel filename (default: multi_site_jobs.xlsx)",
			},
			&cli.StringFlag{
				Name:  "sites-file",
				Usage: "Optional CSV/XLSX/JSON/YAML file of additional career sites",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Optional rotating log file path",
			},
		},
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "save-linkedin",
				Usage:  "Save LinkedIn authentication state (requires LINKEDIN_USER and LINKEDIN_PASS env vars)",
				Action: saveLinkedInAction,
			},
			{
				Name:      "export-sites-pdf",
				Usage:     "Extract company career URLs from a PDF into a JSON sites file",
				ArgsUsage: "<pdf-file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sites-output",
						Usage: "Output JSON file",
						Value: "extracted_company_sites.json",
					},
				},
				Action: exportSitesAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if out := cmd.String("output"); out != "" {
		cfg.OutputFile = out
	}
	if lf := cmd.String("log-file"); lf != "" {
		cfg.LogFile = lf
	}
	if cmd.Bool("headful") {
		cfg.Headless = false
	}

	logger, closer, err := logging.New(zapcore.InfoLevel, cfg.LogFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("init logging: %v", err), 1)
	}
	defer closer.Close()
	defer logger.Sync()

	//assemble the site list: built-ins plus the optional sites file,
	//then the optional type filter
	sites := config.DefaultSites(cfg.LinkedInStatePath)
	if path := cmd.String("sites-file"); path != "" {
		sites = append(sites, sitesfile.Load(path, logger)...)
	}
	if raw := cmd.String("sites"); raw != "" {
		types := strings.Split(raw, ",")
		logger.Infof("Filtering to site types: %v", types)
		sites = config.FilterSites(sites, types)
	}
	if len(sites) == 0 {
		return cli.Exit("no sites to scrape after filtering", 1)
	}

	logger.Infof("🚀 Starting jobharvest (headless=%v, %d sites)", cfg.Headless, len(sites))

	var tg *reporter.TelegramReporter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err = reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Errorf("❌ Telegram reporter unavailable: %v", err)
			tg = nil
		}
	}
	notify := func(runErr error) {
		if tg == nil {
			return
		}
		if err := tg.SendError(runErr); err != nil {
			logger.Errorf("❌ Failed to send Telegram error notification: %v", err)
		}
	}

	profiles := linkfilter.NewProfileStore(cfg.ProfilesPath)
	r := runner.New(logger, profiles, cfg.Headless)

	batch, states, err := r.Run(ctx, sites)
	if err != nil {
		notify(err)
		return cli.Exit(fmt.Sprintf("✗ %v", err), 1)
	}
	scraped := 0
	for _, st := range states {
		if st.JobsFound > 0 {
			scraped++
		}
	}
	logger.Infof("📦 Total jobs collected: %d", len(batch))

	//a failed read of prior state degrades to an empty table; the run
	//still produces output (duplicate added counts are accepted)
	existing, err := store.ReadTable(cfg.OutputFile)
	if err != nil {
		logger.Errorf("❌ Failed to read existing table, treating as empty: %v", err)
		existing = store.NewTable()
	}

	merged, added, updated := store.Merge(existing, store.BatchFromJobs(batch))
	if err := store.WriteTable(cfg.OutputFile, merged); err != nil {
		notify(err)
		return cli.Exit(fmt.Sprintf("✗ failed to write %s: %v", cfg.OutputFile, err), 1)
	}
	logger.Infof("💾 Saved %d total jobs to %s (added %d, updated %d)", merged.Len(), cfg.OutputFile, added, updated)

	//optional Supabase sync
	if cfg.SupabaseDBURL != "" {
		repo, err := database.Connect(ctx, cfg.SupabaseDBURL, logger)
		if err != nil {
			logger.Errorf("❌ Supabase unavailable, skipping sync: %v", err)
		} else {
			defer repo.Close()
			if err := repo.UpsertJobs(ctx, merged); err != nil {
				logger.Errorf("❌ Supabase sync interrupted: %v", err)
			}
		}
	} else {
		logger.Info("ℹ️ SUPABASE_DB_URL not set; skipping DB sync")
	}

	//optional Telegram summary
	if tg != nil {
		if err := tg.SendRunSummary(scraped, len(batch), added, updated); err != nil {
			logger.Errorf("❌ Failed to send Telegram summary: %v", err)
		}
	}

	logger.Info("🏁 Execution finished.")
	return nil
}

func saveLinkedInAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	fmt.Println("Saving LinkedIn authentication state...")
	if err := browser.SaveLinkedInState(cfg.LinkedInUser, cfg.LinkedInPass, cfg.LinkedInStatePath); err != nil {
		return cli.Exit(fmt.Sprintf("✗ Failed to save LinkedIn state: %v", err), 1)
	}
	fmt.Printf("✓ LinkedIn storage state saved to %s\n", cfg.LinkedInStatePath)
	fmt.Println("  You can now run the scraper with authenticated LinkedIn access.")
	return nil
}

func exportSitesAction(ctx context.Context, cmd *cli.Command) error {
	pdfPath := cmd.Args().First()
	if pdfPath == "" {
		return cli.Exit("usage: jobharvest export-sites-pdf <pdf-file>", 1)
	}
	output := cmd.String("sites-output")

	fmt.Printf("Extracting site URLs from PDF: %s\n", pdfPath)
	count, err := pdfsites.ExportSites(pdfPath, output)
	if err != nil {
		return cli.Exit(fmt.Sprintf("✗ %v", err), 1)
	}
	if count == 0 {
		return cli.Exit("✗ No sites extracted from PDF. Check file path/content.", 1)
	}
	fmt.Printf("✓ Extracted %d sites to %s\n", count, output)
	fmt.Printf("  Next run: jobharvest --sites-file %s\n", output)
	return nil
}
