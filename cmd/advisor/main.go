package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shopping-advisor-go/internal/advisor"
	"shopping-advisor-go/internal/config"
	"shopping-advisor-go/internal/logger"
	"shopping-advisor-go/internal/processor"
	"shopping-advisor-go/internal/scraper"
)

var (
	envFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:          "advisor",
	Short:        "Product listing advisor",
	Long:         `Scrape a marketplace listing, ask the advisory service for a verdict and summarize review sentiment.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	rootCmd.AddCommand(analyzeCmd, statusCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newProcessor builds the same pipeline the API server runs.
func newProcessor() *processor.Processor {
	var cfg config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}

	log := logger.Discard()
	if !quiet {
		log = logger.New()
		log.Logger.SetOutput(os.Stderr)
	}
	return processor.New(
		scraper.New(cfg, log),
		advisor.New(cfg, log),
		cfg.MarketplaceHost,
		cfg.ScrapeTimeout+cfg.AdvisorTimeout,
		log,
	)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
