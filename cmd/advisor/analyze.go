package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopping-advisor-go/internal/processor"
	"shopping-advisor-go/internal/report"
)

var (
	budget      string
	preferences string
	xlsxOut     string
	batchFile   string
	workers     int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze a product listing",
	Long: `Analyze one product listing URL, or every listing in a workbook with --batch.
The result is printed as JSON, and written as an .xlsx report when --xlsx is set.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if batchFile == "" && len(args) != 1 {
			return fmt.Errorf("expected exactly one url, or --batch")
		}
		if batchFile != "" && len(args) > 0 {
			return fmt.Errorf("a url argument cannot be combined with --batch")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var reqs []processor.Request
		if batchFile != "" {
			var err error
			reqs, err = report.LoadListings(batchFile)
			if err != nil {
				return err
			}
		} else {
			reqs = []processor.Request{{URL: args[0], Budget: budget, Preferences: preferences}}
		}

		results, failed := newProcessor().AnalyzeAll(cmd.Context(), reqs, workers)
		for _, res := range results {
			if res.Error != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.URL, res.Error)
			}
		}

		if err := printJSON(cmd.OutOrStdout(), output(results, batchFile != "")); err != nil {
			return err
		}

		if xlsxOut != "" {
			f, err := os.Create(xlsxOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", xlsxOut, err)
			}
			defer f.Close()
			if err := report.Write(f, results...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", xlsxOut)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d listings failed", failed, len(reqs))
		}
		return nil
	},
}

// output keeps batch results as an array, even for a one-row workbook.
func output(results []processor.Result, batch bool) any {
	if !batch && len(results) == 1 {
		return results[0]
	}
	return results
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the scrape and advisory services",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := newProcessor().Status(cmd.Context())
		if err := printJSON(cmd.OutOrStdout(), st); err != nil {
			return err
		}
		if !st.OK {
			return fmt.Errorf("one or more services are unhealthy")
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&budget, "budget", "b", "", "budget, e.g. \"Rp 3.500.000\"")
	analyzeCmd.Flags().StringVarP(&preferences, "prefs", "p", "", "free-text preferences")
	analyzeCmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write an .xlsx report to this path")
	analyzeCmd.Flags().StringVar(&batchFile, "batch", "", "workbook of listings to analyze")
	analyzeCmd.Flags().IntVarP(&workers, "workers", "w", processor.DefaultWorkers, "concurrent analyses in --batch mode")
}
