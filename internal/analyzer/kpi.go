package analyzer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"ssareport/pkg/models"
)

// KPIAnalyzer computes performance metrics over a record set. Week-based
// metrics delegate to the embedded WeekAnalyzer so year transitions are
// handled consistently with the week reports.
type KPIAnalyzer struct {
	weeks         *WeekAnalyzer
	criticalLabel string
	simpleValue   string
}

// KPIOption configures a KPIAnalyzer.
type KPIOption func(*KPIAnalyzer)

// WithCriticalPriority sets the issue-priority label treated as critical.
func WithCriticalPriority(label string) KPIOption {
	return func(k *KPIAnalyzer) {
		if label != "" {
			k.criticalLabel = label
		}
	}
}

// WithSimpleExecutionValue sets the cell value marking simple-execution
// orders.
func WithSimpleExecutionValue(value string) KPIOption {
	return func(k *KPIAnalyzer) {
		if value != "" {
			k.simpleValue = value
		}
	}
}

// NewKPIAnalyzer creates a KPI analyzer on top of a week analyzer.
func NewKPIAnalyzer(weeks *WeekAnalyzer, opts ...KPIOption) *KPIAnalyzer {
	k := &KPIAnalyzer{
		weeks:         weeks,
		criticalLabel: "S3.7",
		simpleValue:   "Sim",
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Efficiency computes the rate KPIs. An empty record set yields zero rates
// and an empty priority share, never a division error.
func (k *KPIAnalyzer) Efficiency(orders []models.ServiceOrder) models.EfficiencyMetrics {
	metrics := models.EfficiencyMetrics{PriorityShare: make(map[string]float64)}
	if len(orders) == 0 {
		return metrics
	}

	scheduled := 0
	simple := 0
	priorityCounts := make(map[string]int)
	for _, order := range orders {
		if order.IsScheduled() {
			scheduled++
		}
		if order.SimpleExecution == k.simpleValue {
			simple++
		}
		priorityCounts[order.IssuePriority]++
	}

	total := float64(len(orders))
	metrics.SchedulingRate = float64(scheduled) / total
	metrics.SimpleExecutionRate = float64(simple) / total
	for priority, count := range priorityCounts {
		metrics.PriorityShare[priority] = float64(count) / total
	}
	return metrics
}

// HealthScore blends scheduling and simple-execution rates into a 0-100
// score, rounded to two decimals.
func (k *KPIAnalyzer) HealthScore(orders []models.ServiceOrder) float64 {
	metrics := k.Efficiency(orders)
	score := metrics.SchedulingRate*0.5 + metrics.SimpleExecutionRate*0.5
	return math.Round(score*100*100) / 100
}

// ResponseTimes returns, per issue priority, the mean number of ISO weeks
// between registration and planned week. Orders without both valid codes are
// skipped; priorities with no measurable orders are absent from the result.
func (k *KPIAnalyzer) ResponseTimes(orders []models.ServiceOrder) map[string]float64 {
	diffs := make(map[string][]float64)
	for _, order := range orders {
		from := k.weeks.ParseWeekCode(order.RegistrationWeek)
		to := k.weeks.ParseWeekCode(order.PlannedWeek)
		diff, ok := k.weeks.WeekDifference(from, to)
		if !ok {
			continue
		}
		diffs[order.IssuePriority] = append(diffs[order.IssuePriority], float64(diff))
	}

	times := make(map[string]float64, len(diffs))
	for priority, values := range diffs {
		times[priority] = stat.Mean(values, nil)
	}
	return times
}

// SectorPerformance computes per-executor-sector totals, scheduling rates,
// and critical shares, ordered by total descending then sector name.
func (k *KPIAnalyzer) SectorPerformance(orders []models.ServiceOrder) []models.SectorMetrics {
	bySector := make(map[string]*models.SectorMetrics)
	for _, order := range orders {
		m := bySector[order.ExecutorSector]
		if m == nil {
			m = &models.SectorMetrics{Sector: order.ExecutorSector}
			bySector[order.ExecutorSector] = m
		}
		m.Total++
		if order.IsScheduled() {
			m.Scheduled++
		}
		if order.IsCritical(k.criticalLabel) {
			m.Critical++
		}
	}

	sectors := make([]models.SectorMetrics, 0, len(bySector))
	for _, m := range bySector {
		m.SchedulingRate = float64(m.Scheduled) / float64(m.Total)
		m.CriticalPercent = float64(m.Critical) / float64(m.Total) * 100
		sectors = append(sectors, *m)
	}
	sort.Slice(sectors, func(i, j int) bool {
		if sectors[i].Total != sectors[j].Total {
			return sectors[i].Total > sectors[j].Total
		}
		return sectors[i].Sector < sectors[j].Sector
	})
	return sectors
}

// WeeklyTrends returns the per-registration-week series of totals, scheduled
// and critical counts, ascending by (year, week). Orders with an unparsable
// registration week are excluded; the weekly aggregation reports those
// separately.
func (k *KPIAnalyzer) WeeklyTrends(orders []models.ServiceOrder) []models.WeekTrend {
	type trendKey = models.YearWeek
	byWeek := make(map[trendKey]*models.WeekTrend)

	for _, order := range orders {
		wk := k.weeks.ParseWeekCode(order.RegistrationWeek)
		if wk == nil {
			continue
		}
		trend := byWeek[*wk]
		if trend == nil {
			trend = &models.WeekTrend{YearWeek: wk.String()}
			byWeek[*wk] = trend
		}
		trend.Total++
		if order.IsScheduled() {
			trend.Scheduled++
		}
		if order.IsCritical(k.criticalLabel) {
			trend.Critical++
		}
	}

	keys := make([]models.YearWeek, 0, len(byWeek))
	for wk := range byWeek {
		keys = append(keys, wk)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	trends := make([]models.WeekTrend, 0, len(keys))
	for _, wk := range keys {
		trend := byWeek[wk]
		trend.SchedulingRate = float64(trend.Scheduled) / float64(trend.Total)
		trends = append(trends, *trend)
	}
	return trends
}

// Summary bundles the headline KPIs for the kpi command.
func (k *KPIAnalyzer) Summary(orders []models.ServiceOrder) *models.KPISummary {
	metrics := k.Efficiency(orders)

	critical := 0
	for _, order := range orders {
		if order.IsCritical(k.criticalLabel) {
			critical++
		}
	}

	summary := &models.KPISummary{
		TotalOrders:         len(orders),
		HealthScore:         k.HealthScore(orders),
		SchedulingRate:      metrics.SchedulingRate * 100,
		SimpleExecutionRate: metrics.SimpleExecutionRate * 100,
		CriticalOrders:      critical,
	}
	if weeks, ok := k.ResponseTimes(orders)[k.criticalLabel]; ok {
		summary.CriticalResponseWeeks = &weeks
	}
	return summary
}
