package analyzer

import (
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"

	"ssareport/pkg/models"
)

// Issue kinds reported by the quality analyzer.
const (
	IssueMissingNumber    = "missing_number"
	IssueMissingSituation = "missing_situation"
	IssueMissingPriority  = "missing_priority"
	IssueBadWeekCode      = "bad_week_code"
	IssueFutureWeek       = "future_week"
	IssueMissingDate      = "missing_date"
	IssueDateOutOfRange   = "date_out_of_range"
	IssueDuplicateRow     = "duplicate_row"
)

// Plausible window for issue timestamps, matching the reporting system's
// retention horizon.
const (
	maxDateAgeYears   = 30
	maxDateAheadYears = 1
)

// QualityAnalyzer checks a record set for data-quality problems. It never
// rejects records; its whole output is diagnostics so the surrounding report
// can render partial results with an explicit quality indicator.
type QualityAnalyzer struct {
	weeks *WeekAnalyzer
	now   time.Time
}

// QualityOption configures a QualityAnalyzer.
type QualityOption func(*QualityAnalyzer)

// WithQualityNow pins the reference time for date-range checks.
func WithQualityNow(now time.Time) QualityOption {
	return func(q *QualityAnalyzer) {
		q.now = now
	}
}

// NewQualityAnalyzer creates a quality analyzer sharing the given week
// analyzer's parsing bounds.
func NewQualityAnalyzer(weeks *WeekAnalyzer, opts ...QualityOption) *QualityAnalyzer {
	q := &QualityAnalyzer{weeks: weeks, now: time.Now()}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Check validates every record and reports issues, per-kind counts,
// duplicate rows, and the overall error rate. Row numbers are 1-based
// positions in the record set.
func (q *QualityAnalyzer) Check(orders []models.ServiceOrder) *models.QualityReport {
	report := &models.QualityReport{
		TotalRecords: len(orders),
		Issues:       []models.QualityIssue{},
		CountsByKind: make(map[string]int),
	}

	fingerprints := make(map[uint64][]int)
	numbers := make(map[uint64]string)
	rowsWithIssues := make(map[int]bool)

	add := func(row int, order models.ServiceOrder, field, kind, detail string) {
		report.Issues = append(report.Issues, models.QualityIssue{
			Row:    row,
			Number: order.Number,
			Field:  field,
			Kind:   kind,
			Detail: detail,
		})
		report.CountsByKind[kind]++
		rowsWithIssues[row] = true
	}

	minDate := q.now.AddDate(-maxDateAgeYears, 0, 0)
	maxDate := q.now.AddDate(maxDateAheadYears, 0, 0)
	current := q.weeks.CurrentWeek()

	for i, order := range orders {
		row := i + 1

		if order.Number == "" {
			add(row, order, "number", IssueMissingNumber, "")
		}
		if order.Situation == "" {
			add(row, order, "situation", IssueMissingSituation, "")
		}
		if order.IssuePriority == "" {
			add(row, order, "issue_priority", IssueMissingPriority, "")
		}

		regWeek := q.weeks.ParseWeekCode(order.RegistrationWeek)
		if regWeek == nil {
			add(row, order, "registration_week", IssueBadWeekCode, order.RegistrationWeek)
		} else if diff, ok := q.weeks.WeekDifference(regWeek, &current); ok && diff < 0 {
			add(row, order, "registration_week", IssueFutureWeek, order.RegistrationWeek)
		}

		// The planned week is optional; only a non-empty malformed value is
		// an issue.
		if order.PlannedWeek != "" && q.weeks.ParseWeekCode(order.PlannedWeek) == nil {
			add(row, order, "planned_week", IssueBadWeekCode, order.PlannedWeek)
		}

		if order.IssuedAt.IsZero() {
			add(row, order, "issued_at", IssueMissingDate, "")
		} else if order.IssuedAt.Before(minDate) || order.IssuedAt.After(maxDate) {
			add(row, order, "issued_at", IssueDateOutOfRange, order.IssuedAt.Format(time.DateTime))
		}

		fp := fingerprint(order)
		fingerprints[fp] = append(fingerprints[fp], row)
		numbers[fp] = order.Number
	}

	for fp, rows := range fingerprints {
		if len(rows) < 2 {
			continue
		}
		sort.Ints(rows)
		report.Duplicates = append(report.Duplicates, models.DuplicateGroup{
			Number: numbers[fp],
			Rows:   rows,
		})
		for _, row := range rows[1:] {
			report.CountsByKind[IssueDuplicateRow]++
			rowsWithIssues[row] = true
		}
	}
	sort.Slice(report.Duplicates, func(i, j int) bool {
		return report.Duplicates[i].Rows[0] < report.Duplicates[j].Rows[0]
	})

	if len(orders) > 0 {
		report.ErrorRate = float64(len(rowsWithIssues)) / float64(len(orders)) * 100
	}
	return report
}

// fingerprint hashes the identifying content of a record. Two rows with the
// same fingerprint are the same order exported twice.
func fingerprint(order models.ServiceOrder) uint64 {
	h := xxhash.New()
	for _, field := range []string{
		order.Number,
		order.Situation,
		order.RegistrationWeek,
		order.IssuedAt.Format(time.RFC3339),
		order.Equipment,
		order.Description,
	} {
		h.WriteString(field)
		h.Write([]byte{0x1f})
	}
	return h.Sum64()
}
