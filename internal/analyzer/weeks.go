// Package analyzer computes ISO-week analyses, KPIs, and data-quality
// reports over loaded service-order records. The record set is treated as a
// read-only snapshot; analyzers hold no shared mutable state and may run
// concurrently over independent snapshots.
package analyzer

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ssareport/pkg/models"
)

// WeekField selects which week code of a record an aggregation uses.
type WeekField string

const (
	WeekFieldRegistration WeekField = "registration"
	WeekFieldPlanned      WeekField = "planned"
)

// ParseWeekField converts a string to a WeekField, defaulting to planned,
// which is what the weekly schedule reports care about.
func ParseWeekField(s string) WeekField {
	if strings.EqualFold(s, string(WeekFieldRegistration)) {
		return WeekFieldRegistration
	}
	return WeekFieldPlanned
}

// WeekAnalyzer performs ISO-week calculations with year-transition
// awareness. The current week is frozen at construction so every record of
// one report is measured against the same reference.
type WeekAnalyzer struct {
	current       models.YearWeek
	minYear       int
	maxYearOffset int
	log           zerolog.Logger
}

// WeekOption configures a WeekAnalyzer.
type WeekOption func(*WeekAnalyzer)

// WithCurrentWeek pins the reference week instead of reading the clock.
func WithCurrentWeek(w models.YearWeek) WeekOption {
	return func(a *WeekAnalyzer) {
		a.current = w
	}
}

// WithYearBounds sets the plausible-year window for week codes: codes before
// minYear or after currentYear+maxOffset parse to no result.
func WithYearBounds(minYear, maxOffset int) WeekOption {
	return func(a *WeekAnalyzer) {
		if minYear > 0 {
			a.minYear = minYear
		}
		if maxOffset >= 0 {
			a.maxYearOffset = maxOffset
		}
	}
}

// WithWeekLogger sets the diagnostics logger.
func WithWeekLogger(log zerolog.Logger) WeekOption {
	return func(a *WeekAnalyzer) {
		a.log = log
	}
}

// NewWeekAnalyzer creates a week analyzer. Without options the current ISO
// week comes from the system clock and the year window is [2000, now+5].
func NewWeekAnalyzer(opts ...WeekOption) *WeekAnalyzer {
	a := &WeekAnalyzer{
		current:       models.CurrentYearWeek(time.Now()),
		minYear:       2000,
		maxYearOffset: 5,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CurrentWeek returns the analyzer's frozen reference week.
func (a *WeekAnalyzer) CurrentWeek() models.YearWeek {
	return a.current
}

// ParseWeekCode converts an untrusted YYYYWW code into a YearWeek, or nil.
// It is the single choke point for dirty week data: empty, NaN-like, wrong
// length, non-numeric, and out-of-range codes all come back nil, never an
// error. A trailing ".0" artifact from float-typed spreadsheet columns is
// stripped before validation.
func (a *WeekAnalyzer) ParseWeekCode(code string) *models.YearWeek {
	s := strings.TrimSpace(code)
	s = strings.TrimSuffix(s, ".0")
	if s == "" || strings.EqualFold(s, "nan") || len(s) != 6 {
		return nil
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return nil
	}
	week, err := strconv.Atoi(s[4:])
	if err != nil {
		return nil
	}

	if year < a.minYear || year > a.current.Year+a.maxYearOffset {
		return nil
	}
	if week < 1 || week > 53 {
		return nil
	}
	return &models.YearWeek{Year: year, Week: week}
}

// WeeksInYear returns how many ISO weeks a year contains (52 or 53).
// December 28 always falls in the last ISO week of its year.
func WeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// WeekDifference returns the signed number of ISO weeks from one week to
// another, spanning year boundaries with each intervening year's actual week
// count. Missing input propagates as ok=false rather than guessing.
func (a *WeekAnalyzer) WeekDifference(from, to *models.YearWeek) (int, bool) {
	if from == nil || to == nil {
		return 0, false
	}
	if from.Year == to.Year {
		return to.Week - from.Week, true
	}
	if to.Year < from.Year {
		diff, ok := a.WeekDifference(to, from)
		return -diff, ok
	}

	total := 0
	for year := from.Year; year < to.Year; year++ {
		total += WeeksInYear(year)
	}
	return total - from.Week + to.Week, true
}

// WeeksInState returns, per record, how many whole ISO weeks elapsed between
// its registration week and the analyzer's current week. Slots are nil for
// unparsable registration codes and for negative differences, which indicate
// a registration week in the future — a data-quality artifact, not an age.
func (a *WeekAnalyzer) WeeksInState(orders []models.ServiceOrder) []*int {
	current := a.current
	ages := make([]*int, len(orders))

	valid := 0
	for i, order := range orders {
		wk := a.ParseWeekCode(order.RegistrationWeek)
		diff, ok := a.WeekDifference(wk, &current)
		if !ok || diff < 0 {
			continue
		}
		age := diff
		ages[i] = &age
		valid++
	}

	a.log.Info().
		Int("valid", valid).
		Int("total", len(orders)).
		Msg("week age calculation")
	if valid < len(orders) {
		a.log.Warn().
			Int("count", len(orders)-valid).
			Msg("orders with missing or malformed registration week")
	}
	return ages
}

// AggregateByWeek groups the record set by (year, week) of the selected week
// field, sub-counting by issue-priority label. Records whose code does not
// parse are excluded from the buckets and counted as unparsed. The result is
// ordered ascending by (year, week) and explicitly empty for empty input.
func (a *WeekAnalyzer) AggregateByWeek(orders []models.ServiceOrder, field WeekField) *models.WeekAnalysis {
	buckets := make(map[models.YearWeek]*models.WeekBucket)

	unparsed := 0
	for _, order := range orders {
		code := order.PlannedWeek
		if field == WeekFieldRegistration {
			code = order.RegistrationWeek
		}

		wk := a.ParseWeekCode(code)
		if wk == nil {
			unparsed++
			continue
		}

		bucket := buckets[*wk]
		if bucket == nil {
			bucket = &models.WeekBucket{
				Year:       wk.Year,
				Week:       wk.Week,
				YearWeek:   wk.String(),
				ByPriority: make(map[string]int),
			}
			buckets[*wk] = bucket
		}
		bucket.ByPriority[order.IssuePriority]++
		bucket.Total++
	}

	ordered := make([]models.WeekBucket, 0, len(buckets))
	for _, bucket := range buckets {
		ordered = append(ordered, *bucket)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Year != ordered[j].Year {
			return ordered[i].Year < ordered[j].Year
		}
		return ordered[i].Week < ordered[j].Week
	})

	return &models.WeekAnalysis{
		Field:        string(field),
		CurrentWeek:  a.current,
		Buckets:      ordered,
		Unparsed:     unparsed,
		TotalRecords: len(orders),
	}
}

// DistributionSummary turns a weekly aggregate into a cumulative
// distribution plus a data-quality indicator for unassigned records.
// Percentages are computed against the total record count, so the final
// cumulative entry and the unassigned share together cover 100%. A zero
// total yields zero percentages, not a division failure.
func (a *WeekAnalyzer) DistributionSummary(analysis *models.WeekAnalysis) *models.Distribution {
	total := analysis.TotalRecords

	entries := make([]models.DistributionEntry, 0, len(analysis.Buckets))
	assigned := 0
	for _, bucket := range analysis.Buckets {
		assigned += bucket.Total
		entries = append(entries, models.DistributionEntry{
			YearWeek:          bucket.YearWeek,
			Count:             bucket.Total,
			CumulativePercent: percent(assigned, total),
		})
	}

	unassigned := total - assigned
	return &models.Distribution{
		Entries: entries,
		Unassigned: models.UnassignedBucket{
			Count:   unassigned,
			Percent: percent(unassigned, total),
		},
		TotalRecords: total,
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
