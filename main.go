package main

import (
	"fmt"
	"os"

	"gelbeseiten-scraper/config"
	"gelbeseiten-scraper/scraper/gelbeseiten"
	"gelbeseiten-scraper/services"
	"gelbeseiten-scraper/storage"
	"gelbeseiten-scraper/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	inputFile  string
	location   string
	outputDir  string
	debug      bool
	headless   bool
	maxPages   int
	postgres   bool
}

func newRootCmd() (*cobra.Command, *flags) {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "gelbeseiten-scraper --location <city> [--input-file professions.txt]",
		Short:         "Scrapes gelbeseiten.de listings per profession and exports them to CSV and JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "JSON5 config file (a <name>.local.<ext> next to it overrides it)")
	fs.StringVar(&f.inputFile, "input-file", "", "Text file with one profession per line")
	fs.StringVar(&f.location, "location", "", "City or region")
	fs.StringVar(&f.outputDir, "output-dir", "results", "Directory for CSV, JSON and metrics files")
	fs.BoolVar(&f.debug, "debug", false, "Print debug output")
	fs.BoolVar(&f.headless, "headless", true, "Run Chrome headless")
	fs.IntVar(&f.maxPages, "max-pages", 0, "Stop after this many pages per profession (0 = no limit)")
	fs.BoolVar(&f.postgres, "postgres", false, "Also store listings in PostgreSQL")

	return cmd, f
}

// buildConfig layers defaults, the config file and explicitly set flags.
func buildConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("location") {
		cfg.Location = f.location
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("debug") {
		cfg.Debug = f.debug
	}
	if changed("headless") {
		cfg.Headless = f.headless
	}
	if changed("max-pages") {
		cfg.MaxPages = f.maxPages
	}
	if changed("postgres") {
		cfg.PostgresEnabled = f.postgres
	}
	if f.inputFile != "" {
		professions, err := config.ReadProfessions(f.inputFile)
		if err != nil {
			return nil, err
		}
		cfg.Professions = professions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	utils.SetupLogger(os.Stderr, cfg.Debug)
	utils.Info("Professions to scrape: %v", cfg.Professions)
	utils.Info("Location: %s", cfg.Location)

	sinks := []services.Sink{storage.NewFileExporter(cfg.OutputDir, cfg.Location)}

	if cfg.PostgresEnabled {
		runID := uuid.New()
		pgWriter, err := storage.NewPostgresWriter(cfg, runID)
		if err != nil {
			return fmt.Errorf("could not connect PostgreSQL: %w", err)
		}
		defer pgWriter.Close()

		if err := pgWriter.EnsureSchema(); err != nil {
			return err
		}
		utils.Info("PostgreSQL sink enabled (run %s)", runID)
		sinks = append(sinks, pgWriter)
	}

	session, err := gelbeseiten.NewChromeSession(cfg)
	if err != nil {
		return fmt.Errorf("could not start scraper: %w", err)
	}
	scraper := gelbeseiten.NewScraper(session, cfg)
	defer scraper.Close()

	metrics, all := services.NewRunner(scraper, cfg.Location, sinks...).Run(cfg.Professions)
	utils.Info("Listings saved this run: %d", len(all))

	path, err := storage.WriteMetrics(cfg.OutputDir, metrics)
	if err != nil {
		return err
	}
	utils.Success("Metrics saved to %s", path)

	services.PrintReport(os.Stdout, metrics)
	return nil
}

func main() {
	cmd, _ := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
