package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearWeekString(t *testing.T) {
	assert.Equal(t, "202401", YearWeek{Year: 2024, Week: 1}.String())
	assert.Equal(t, "202353", YearWeek{Year: 2023, Week: 53}.String())
	assert.Equal(t, "200012", YearWeek{Year: 2000, Week: 12}.String())
}

func TestYearWeekCompare(t *testing.T) {
	tests := []struct {
		a, b YearWeek
		want int
	}{
		{YearWeek{Year: 2024, Week: 1}, YearWeek{Year: 2024, Week: 1}, 0},
		{YearWeek{Year: 2024, Week: 1}, YearWeek{Year: 2024, Week: 2}, -1},
		{YearWeek{Year: 2024, Week: 2}, YearWeek{Year: 2024, Week: 1}, 1},
		{YearWeek{Year: 2023, Week: 52}, YearWeek{Year: 2024, Week: 1}, -1},
		{YearWeek{Year: 2024, Week: 1}, YearWeek{Year: 2023, Week: 52}, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%v vs %v", tt.a, tt.b)
	}
}

func TestYearWeekBefore(t *testing.T) {
	assert.True(t, YearWeek{Year: 2023, Week: 52}.Before(YearWeek{Year: 2024, Week: 1}))
	assert.False(t, YearWeek{Year: 2024, Week: 1}.Before(YearWeek{Year: 2024, Week: 1}))
	assert.False(t, YearWeek{Year: 2024, Week: 2}.Before(YearWeek{Year: 2024, Week: 1}))
}

func TestCurrentYearWeek(t *testing.T) {
	// 2024-01-29 is a Monday in ISO week 5.
	got := CurrentYearWeek(time.Date(2024, time.January, 29, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, YearWeek{Year: 2024, Week: 5}, got)

	// 2023-01-01 is a Sunday belonging to ISO week 52 of 2022.
	got = CurrentYearWeek(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, YearWeek{Year: 2022, Week: 52}, got)

	// 2020-12-31 belongs to week 53 of the long year 2020.
	got = CurrentYearWeek(time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, YearWeek{Year: 2020, Week: 53}, got)
}
