package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssareport/pkg/models"
)

func testKPIAnalyzer() *KPIAnalyzer {
	return NewKPIAnalyzer(testAnalyzer())
}

func kpiOrders() []models.ServiceOrder {
	return []models.ServiceOrder{
		{
			Number:           "1001",
			RegistrationWeek: "202401",
			PlannedWeek:      "202403",
			IssuePriority:    "S3.7",
			SimpleExecution:  "Sim",
			ExecutorSector:   "IEE3",
		},
		{
			Number:           "1002",
			RegistrationWeek: "202352",
			PlannedWeek:      "202401",
			IssuePriority:    "S3.7",
			SimpleExecution:  "Não",
			ExecutorSector:   "IEE3",
		},
		{
			Number:           "1003",
			RegistrationWeek: "202402",
			PlannedWeek:      "",
			IssuePriority:    "S3.2",
			SimpleExecution:  "Não",
			ExecutorSector:   "IME1",
		},
		{
			Number:           "1004",
			RegistrationWeek: "202402",
			PlannedWeek:      "202404",
			IssuePriority:    "S3.2",
			SimpleExecution:  "Sim",
			ExecutorSector:   "IME1",
		},
	}
}

func TestEfficiency(t *testing.T) {
	metrics := testKPIAnalyzer().Efficiency(kpiOrders())

	assert.InDelta(t, 0.75, metrics.SchedulingRate, 1e-9)
	assert.InDelta(t, 0.5, metrics.SimpleExecutionRate, 1e-9)
	assert.InDelta(t, 0.5, metrics.PriorityShare["S3.7"], 1e-9)
	assert.InDelta(t, 0.5, metrics.PriorityShare["S3.2"], 1e-9)
}

func TestEfficiency_Empty(t *testing.T) {
	metrics := testKPIAnalyzer().Efficiency(nil)

	assert.Zero(t, metrics.SchedulingRate)
	assert.Zero(t, metrics.SimpleExecutionRate)
	assert.Empty(t, metrics.PriorityShare)
}

func TestHealthScore(t *testing.T) {
	score := testKPIAnalyzer().HealthScore(kpiOrders())
	// (0.75*0.5 + 0.5*0.5) * 100
	assert.InDelta(t, 62.5, score, 1e-9)

	assert.Zero(t, testKPIAnalyzer().HealthScore(nil))
}

func TestResponseTimes(t *testing.T) {
	times := testKPIAnalyzer().ResponseTimes(kpiOrders())

	// S3.7: same-year 202401->202403 is 2 weeks, cross-year 202352->202401
	// over a 52-week 2023 is 1 week.
	require.Contains(t, times, "S3.7")
	assert.InDelta(t, 1.5, times["S3.7"], 1e-9)

	// S3.2: only order 1004 has both codes.
	require.Contains(t, times, "S3.2")
	assert.InDelta(t, 2.0, times["S3.2"], 1e-9)
}

func TestResponseTimes_NoMeasurableOrders(t *testing.T) {
	times := testKPIAnalyzer().ResponseTimes([]models.ServiceOrder{
		{RegistrationWeek: "202401", PlannedWeek: "", IssuePriority: "S3.5"},
	})
	assert.NotContains(t, times, "S3.5")
}

func TestSectorPerformance(t *testing.T) {
	sectors := testKPIAnalyzer().SectorPerformance(kpiOrders())

	require.Len(t, sectors, 2)
	// Equal totals: ordered by name.
	assert.Equal(t, "IEE3", sectors[0].Sector)
	assert.Equal(t, 2, sectors[0].Total)
	assert.Equal(t, 2, sectors[0].Critical)
	assert.InDelta(t, 100.0, sectors[0].CriticalPercent, 1e-9)
	assert.InDelta(t, 1.0, sectors[0].SchedulingRate, 1e-9)

	assert.Equal(t, "IME1", sectors[1].Sector)
	assert.Zero(t, sectors[1].Critical)
	assert.InDelta(t, 0.5, sectors[1].SchedulingRate, 1e-9)
}

func TestWeeklyTrends(t *testing.T) {
	trends := testKPIAnalyzer().WeeklyTrends(kpiOrders())

	require.Len(t, trends, 3)
	assert.Equal(t, "202352", trends[0].YearWeek)
	assert.Equal(t, "202401", trends[1].YearWeek)
	assert.Equal(t, "202402", trends[2].YearWeek)

	assert.Equal(t, 2, trends[2].Total)
	assert.Equal(t, 1, trends[2].Scheduled)
	assert.InDelta(t, 0.5, trends[2].SchedulingRate, 1e-9)
	assert.Equal(t, 1, trends[0].Critical)
}

func TestKPISummary(t *testing.T) {
	summary := testKPIAnalyzer().Summary(kpiOrders())

	assert.Equal(t, 4, summary.TotalOrders)
	assert.Equal(t, 2, summary.CriticalOrders)
	assert.InDelta(t, 62.5, summary.HealthScore, 1e-9)
	require.NotNil(t, summary.CriticalResponseWeeks)
	assert.InDelta(t, 1.5, *summary.CriticalResponseWeeks, 1e-9)
}

func TestKPISummary_Empty(t *testing.T) {
	summary := testKPIAnalyzer().Summary(nil)

	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.HealthScore)
	assert.Nil(t, summary.CriticalResponseWeeks)
}

func TestKPIAnalyzer_CustomLabels(t *testing.T) {
	k := NewKPIAnalyzer(testAnalyzer(),
		WithCriticalPriority("P1"),
		WithSimpleExecutionValue("Yes"),
	)

	orders := []models.ServiceOrder{
		{RegistrationWeek: "202401", IssuePriority: "P1", SimpleExecution: "Yes"},
		{RegistrationWeek: "202401", IssuePriority: "P2", SimpleExecution: "No"},
	}
	summary := k.Summary(orders)
	assert.Equal(t, 1, summary.CriticalOrders)

	metrics := k.Efficiency(orders)
	assert.InDelta(t, 0.5, metrics.SimpleExecutionRate, 1e-9)
}
