package models

import "sort"

// WeekBucket is one distinct (year, week) group of a weekly aggregation,
// with counts broken down by issue-priority label.
type WeekBucket struct {
	Year       int            `json:"year"`
	Week       int            `json:"week"`
	YearWeek   string         `json:"year_week"`
	ByPriority map[string]int `json:"by_priority"`
	Total      int            `json:"total"`
}

// WeekAnalysis is the weekly aggregation of a record set. It is rebuilt on
// every analysis run and never persisted.
type WeekAnalysis struct {
	Field        string       `json:"field"`
	CurrentWeek  YearWeek     `json:"current_week"`
	Buckets      []WeekBucket `json:"buckets"`
	Unparsed     int          `json:"unparsed"`
	TotalRecords int          `json:"total_records"`
}

// AssignedTotal returns the number of records that landed in some bucket.
func (a *WeekAnalysis) AssignedTotal() int {
	total := 0
	for _, b := range a.Buckets {
		total += b.Total
	}
	return total
}

// Priorities returns the distinct priority labels seen across all buckets,
// sorted for stable column ordering in renderers.
func (a *WeekAnalysis) Priorities() []string {
	seen := make(map[string]bool)
	for _, b := range a.Buckets {
		for p := range b.ByPriority {
			seen[p] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for p := range seen {
		labels = append(labels, p)
	}
	sort.Strings(labels)
	return labels
}

// DistributionEntry is one week of the cumulative distribution.
type DistributionEntry struct {
	YearWeek          string  `json:"year_week"`
	Count             int     `json:"count"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

// UnassignedBucket counts records that could not be assigned to any week.
type UnassignedBucket struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution summarizes a WeekAnalysis as a cumulative distribution plus a
// data-quality indicator for unassigned records.
type Distribution struct {
	Entries      []DistributionEntry `json:"entries"`
	Unassigned   UnassignedBucket    `json:"unassigned"`
	TotalRecords int                 `json:"total_records"`
}

// AgeSummary describes the weeks-in-state ages of a record set.
type AgeSummary struct {
	Valid       int         `json:"valid"`
	Invalid     int         `json:"invalid"`
	MeanWeeks   float64     `json:"mean_weeks"`
	MedianWeeks float64     `json:"median_weeks"`
	P90Weeks    float64     `json:"p90_weeks"`
	MaxWeeks    int         `json:"max_weeks"`
	Histogram   []AgeBucket `json:"histogram"`
}

// AgeBucket is one band of the weeks-in-state histogram.
type AgeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// EfficiencyMetrics are the rate KPIs over a record set.
type EfficiencyMetrics struct {
	SchedulingRate      float64            `json:"scheduling_rate"`
	SimpleExecutionRate float64            `json:"simple_execution_rate"`
	PriorityShare       map[string]float64 `json:"priority_share"`
}

// SectorMetrics is per-executor-sector performance.
type SectorMetrics struct {
	Sector          string  `json:"sector"`
	Total           int     `json:"total"`
	Scheduled       int     `json:"scheduled"`
	SchedulingRate  float64 `json:"scheduling_rate"`
	Critical        int     `json:"critical"`
	CriticalPercent float64 `json:"critical_percent"`
}

// WeekTrend is one registration week of the weekly trend series.
type WeekTrend struct {
	YearWeek       string  `json:"year_week"`
	Total          int     `json:"total"`
	Scheduled      int     `json:"scheduled"`
	Critical       int     `json:"critical"`
	SchedulingRate float64 `json:"scheduling_rate"`
}

// KPISummary bundles the headline metrics for the kpi command.
type KPISummary struct {
	TotalOrders           int      `json:"total_orders"`
	HealthScore           float64  `json:"health_score"`
	SchedulingRate        float64  `json:"scheduling_rate"`
	SimpleExecutionRate   float64  `json:"simple_execution_rate"`
	CriticalOrders        int      `json:"critical_orders"`
	CriticalResponseWeeks *float64 `json:"critical_response_weeks,omitempty"`
}

// QualityIssue is one data-quality finding against a single record.
type QualityIssue struct {
	Row    int    `json:"row"`
	Number string `json:"number,omitempty"`
	Field  string `json:"field"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// DuplicateGroup collects rows whose normalized content hashed identically.
type DuplicateGroup struct {
	Number string `json:"number"`
	Rows   []int  `json:"rows"`
}

// QualityReport is the outcome of validating one record set.
type QualityReport struct {
	File         string           `json:"file,omitempty"`
	TotalRecords int              `json:"total_records"`
	Issues       []QualityIssue   `json:"issues"`
	CountsByKind map[string]int   `json:"counts_by_kind"`
	Duplicates   []DuplicateGroup `json:"duplicates,omitempty"`
	ErrorRate    float64          `json:"error_rate"`
}
