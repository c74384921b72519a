package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssareport/pkg/models"
)

func testQualityAnalyzer() *QualityAnalyzer {
	now := time.Date(2024, time.January, 29, 12, 0, 0, 0, time.UTC) // ISO week 2024W05
	return NewQualityAnalyzer(testAnalyzer(), WithQualityNow(now))
}

func cleanOrder(number string) models.ServiceOrder {
	return models.ServiceOrder{
		Number:           number,
		Situation:        "ADM",
		RegistrationWeek: "202403",
		IssuedAt:         time.Date(2024, time.January, 15, 8, 30, 0, 0, time.UTC),
		IssuePriority:    "S3.2",
		ExecutorSector:   "IEE3",
	}
}

func TestQualityCheck_CleanRecords(t *testing.T) {
	report := testQualityAnalyzer().Check([]models.ServiceOrder{
		cleanOrder("1001"),
		cleanOrder("1002"),
	})

	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Duplicates)
	assert.Zero(t, report.ErrorRate)
	assert.Equal(t, 2, report.TotalRecords)
}

func TestQualityCheck_MissingFields(t *testing.T) {
	order := cleanOrder("")
	order.Situation = ""
	order.IssuePriority = ""

	report := testQualityAnalyzer().Check([]models.ServiceOrder{order})

	assert.Equal(t, 1, report.CountsByKind[IssueMissingNumber])
	assert.Equal(t, 1, report.CountsByKind[IssueMissingSituation])
	assert.Equal(t, 1, report.CountsByKind[IssueMissingPriority])
	assert.InDelta(t, 100.0, report.ErrorRate, 1e-9)
}

func TestQualityCheck_WeekCodes(t *testing.T) {
	bad := cleanOrder("1001")
	bad.RegistrationWeek = "garbage"

	future := cleanOrder("1002")
	future.RegistrationWeek = "202410" // after the frozen current week 202405

	badPlanned := cleanOrder("1003")
	badPlanned.PlannedWeek = "20241" // wrong length

	unplanned := cleanOrder("1004") // empty planned week is not an issue

	report := testQualityAnalyzer().Check([]models.ServiceOrder{bad, future, badPlanned, unplanned})

	assert.Equal(t, 2, report.CountsByKind[IssueBadWeekCode])
	assert.Equal(t, 1, report.CountsByKind[IssueFutureWeek])

	fields := make(map[string]int)
	for _, issue := range report.Issues {
		fields[issue.Field]++
	}
	assert.Equal(t, 2, fields["registration_week"])
	assert.Equal(t, 1, fields["planned_week"])
	assert.InDelta(t, 75.0, report.ErrorRate, 1e-9)
}

func TestQualityCheck_Dates(t *testing.T) {
	missing := cleanOrder("1001")
	missing.IssuedAt = time.Time{}

	ancient := cleanOrder("1002")
	ancient.IssuedAt = time.Date(1980, time.June, 1, 0, 0, 0, 0, time.UTC)

	ahead := cleanOrder("1003")
	ahead.IssuedAt = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	report := testQualityAnalyzer().Check([]models.ServiceOrder{missing, ancient, ahead})

	assert.Equal(t, 1, report.CountsByKind[IssueMissingDate])
	assert.Equal(t, 2, report.CountsByKind[IssueDateOutOfRange])
}

func TestQualityCheck_Duplicates(t *testing.T) {
	report := testQualityAnalyzer().Check([]models.ServiceOrder{
		cleanOrder("1001"),
		cleanOrder("1001"),
		cleanOrder("1002"),
		cleanOrder("1001"),
	})

	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "1001", report.Duplicates[0].Number)
	assert.Equal(t, []int{1, 2, 4}, report.Duplicates[0].Rows)
	// The first occurrence is fine; the repeats count as issues.
	assert.Equal(t, 2, report.CountsByKind[IssueDuplicateRow])
	assert.InDelta(t, 50.0, report.ErrorRate, 1e-9)
}

func TestQualityCheck_Empty(t *testing.T) {
	report := testQualityAnalyzer().Check(nil)

	assert.Zero(t, report.TotalRecords)
	assert.Empty(t, report.Issues)
	assert.Zero(t, report.ErrorRate)
}
