package analytics

import (
	"sort"
	"time"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// MonthlyCounts counts transactions per calendar month, oldest first.
// Rows without a date are skipped.
func MonthlyCounts(t *models.Table) []models.MonthCount {
	counts := map[time.Time]int{}
	for _, tr := range t.Transactions {
		if ym, ok := tr.YearMonth(); ok {
			counts[ym]++
		}
	}
	out := make([]models.MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, models.MonthCount{Month: m, N: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}
