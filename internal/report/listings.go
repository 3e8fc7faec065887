package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"shopping-advisor-go/internal/processor"
)

// LoadListings reads analysis requests from the first sheet of a workbook.
// Columns are detected by header: a url/link column is required, budget and
// preference columns are optional.
func LoadListings(path string) ([]processor.Request, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	urlIdx, budgetIdx, prefIdx := -1, -1, -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "url") || strings.Contains(l, "link"):
			if urlIdx == -1 {
				urlIdx = i
			}
		case strings.Contains(l, "budget"):
			budgetIdx = i
		case strings.Contains(l, "pref") || strings.Contains(l, "note"):
			prefIdx = i
		}
	}
	if urlIdx == -1 {
		return nil, fmt.Errorf("no url column in header %v", rows[0])
	}

	cell := func(r []string, idx int) string {
		if idx >= 0 && idx < len(r) {
			return strings.TrimSpace(r[idx])
		}
		return ""
	}
	var out []processor.Request
	for _, r := range rows[1:] {
		u := cell(r, urlIdx)
		// skip rows that don't hold a link
		if !strings.HasPrefix(strings.ToLower(u), "http://") && !strings.HasPrefix(strings.ToLower(u), "https://") {
			continue
		}
		out = append(out, processor.Request{
			URL:         u,
			Budget:      cell(r, budgetIdx),
			Preferences: cell(r, prefIdx),
		})
	}
	return out, nil
}
