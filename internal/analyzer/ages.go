package analyzer

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"ssareport/pkg/models"
)

// ageBands are the histogram bands for weeks-in-state reporting. The open
// last band catches long-stuck orders.
var ageBands = []struct {
	label string
	min   int
	max   int // inclusive; -1 means unbounded
}{
	{"0", 0, 0},
	{"1-2", 1, 2},
	{"3-4", 3, 4},
	{"5-8", 5, 8},
	{"9-16", 9, 16},
	{"17+", 17, -1},
}

// AgeSummary condenses the weeks-in-state ages of a record set into counts,
// summary statistics, and a banded histogram. Records without a valid age
// are counted but excluded from the numeric statistics.
func (a *WeekAnalyzer) AgeSummary(orders []models.ServiceOrder) *models.AgeSummary {
	ages := a.WeeksInState(orders)

	var values []float64
	maxAge := 0
	bandCounts := make([]int, len(ageBands))
	for _, age := range ages {
		if age == nil {
			continue
		}
		values = append(values, float64(*age))
		if *age > maxAge {
			maxAge = *age
		}
		for i, band := range ageBands {
			if *age >= band.min && (band.max < 0 || *age <= band.max) {
				bandCounts[i]++
				break
			}
		}
	}

	summary := &models.AgeSummary{
		Valid:   len(values),
		Invalid: len(orders) - len(values),
	}
	for i, band := range ageBands {
		summary.Histogram = append(summary.Histogram, models.AgeBucket{
			Label: fmt.Sprintf("%s weeks", band.label),
			Count: bandCounts[i],
		})
	}

	if len(values) == 0 {
		return summary
	}

	sort.Float64s(values)
	summary.MeanWeeks = stat.Mean(values, nil)
	summary.MedianWeeks = stat.Quantile(0.5, stat.Empirical, values, nil)
	summary.P90Weeks = stat.Quantile(0.9, stat.Empirical, values, nil)
	summary.MaxWeeks = maxAge
	return summary
}
