package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"shopping-advisor-go/internal/processor"
	"shopping-advisor-go/internal/sentiment"
)

const (
	SheetSummary   = "Summary"
	SheetSentiment = "Sentiment"
	SheetReviews   = "Reviews"
)

var (
	summaryHeader = []any{
		"URL", "Product", "Store", "Price", "Recommendation", "Confidence %",
		"Confidence", "Risk", "Sentiment source", "Narrative", "Analysis", "Error",
	}
	sentimentHeader = []any{"URL", "Category", "Count", "Percent"}
	reviewsHeader   = []any{"URL", "Rating", "Category", "Reviewer", "Review", "Date", "Variant"}
)

// Write renders one or more analysis results as an xlsx workbook.
func Write(w io.Writer, results ...processor.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetSentiment, SheetReviews} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	sw := sheetWriter{f: f}
	sw.row(SheetSummary, summaryHeader)
	sw.row(SheetSentiment, sentimentHeader)
	sw.row(SheetReviews, reviewsHeader)

	for _, r := range results {
		sw.row(SheetSummary, summaryRow(r))
		if r.Sentiment != nil {
			d := r.Sentiment.Distribution
			for _, c := range []sentiment.Category{sentiment.Positive, sentiment.Neutral, sentiment.Negative} {
				sw.row(SheetSentiment, []any{r.URL, string(c), d.Count(c), d.Percent(c)})
			}
		}
		for _, rv := range r.Reviews {
			rating := any("")
			if rv.Rating.Valid() {
				rating = float64(rv.Rating)
			}
			sw.row(SheetReviews, []any{
				r.URL, rating, string(sentiment.Classify(float64(rv.Rating))),
				rv.ReviewerName, rv.ReviewText, rv.ReviewDate, rv.Variant,
			})
		}
	}
	if sw.err != nil {
		return sw.err
	}

	_ = f.SetColWidth(SheetSummary, "J", "K", 80)
	_ = f.SetColWidth(SheetReviews, "E", "E", 80)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRow(r processor.Result) []any {
	source, narrative := "unavailable", ""
	if r.Sentiment != nil {
		source = r.Sentiment.Source
		narrative = r.Sentiment.Narrative.Text
	}
	label := r.RecommendationLabel
	if label == "" {
		label = r.Advice.Recommendation
	}
	return []any{
		r.URL, r.Product.ProductName, r.Product.StoreName, string(r.Product.Price),
		label, r.Confidence.Percent, r.Confidence.Label, r.Confidence.Risk,
		source, narrative, strings.TrimSpace(r.Advice.Analysis), r.Error,
	}
}

// sheetWriter appends rows per sheet and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	next map[string]int
	err  error
}

func (s *sheetWriter) row(sheet string, values []any) {
	if s.err != nil {
		return
	}
	if s.next == nil {
		s.next = map[string]int{}
	}
	s.next[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, s.next[sheet])
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(sheet, cell, &values); err != nil {
		s.err = fmt.Errorf("write %s row %d: %w", sheet, s.next[sheet], err)
	}
}
