package view

import (
	"testing"
	"time"

	"github.com/majilabs/oasis/internal/reservoir/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeverityBoundaries(t *testing.T) {
	assert.Equal(t, SeverityGood, Severity(100))
	assert.Equal(t, SeverityGood, Severity(70))
	assert.Equal(t, SeverityWarning, Severity(69))
	assert.Equal(t, SeverityWarning, Severity(40))
	assert.Equal(t, SeverityCritical, Severity(39))
	assert.Equal(t, SeverityCritical, Severity(0))
}

func TestDaysUntilRunout(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, ok := DaysUntilRunout(nil, now)
	assert.False(t, ok)

	// Partial days round up.
	runout := now.Add(36 * time.Hour)
	days, ok := DaysUntilRunout(&runout, now)
	assert.True(t, ok)
	assert.Equal(t, 2, days)

	runout = now.Add(10 * 24 * time.Hour)
	days, _ = DaysUntilRunout(&runout, now)
	assert.Equal(t, 10, days)

	runout = now.Add(-24 * time.Hour)
	days, _ = DaysUntilRunout(&runout, now)
	assert.Equal(t, -1, days)
}

func TestNewRunoutMessages(t *testing.T) {
	now := time.Now().UTC()

	future := now.Add(5 * 24 * time.Hour)
	r := New(domain.Reservoir{
		TotalCapacityM3:     1000,
		CurrentLevelM3:      500,
		EstimatedRunoutDate: &future,
	}, now)
	assert.Equal(t, "Will run out in approximately 5 days", r.RunoutMessage)
	assert.Equal(t, 50, r.CurrentCapacityPercentage)
	assert.Equal(t, SeverityWarning, r.Severity)

	past := now.Add(-48 * time.Hour)
	r = New(domain.Reservoir{
		TotalCapacityM3:     1000,
		CurrentLevelM3:      500,
		EstimatedRunoutDate: &past,
	}, now)
	assert.Equal(t, "Estimated runout date has passed", r.RunoutMessage)

	r = New(domain.Reservoir{TotalCapacityM3: 1000, CurrentLevelM3: 500}, now)
	assert.Nil(t, r.DaysUntilRunout)
	assert.Empty(t, r.RunoutMessage)
}

func TestNewZeroCapacity(t *testing.T) {
	r := New(domain.Reservoir{TotalCapacityM3: 0, CurrentLevelM3: 0}, time.Now())
	assert.Equal(t, 0, r.CurrentCapacityPercentage)
	assert.Equal(t, SeverityCritical, r.Severity)
}

func TestSummarize(t *testing.T) {
	records := []domain.Reservoir{
		{TotalCapacityM3: 1000, CurrentLevelM3: 800}, // 80%
		{TotalCapacityM3: 1000, CurrentLevelM3: 190}, // 19%, critical
		{TotalCapacityM3: 1000, CurrentLevelM3: 200}, // 20%, on the boundary: not critical
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.TotalReservoirs)
	assert.Equal(t, 40, s.AverageLevel) // round(119/3)
	assert.Equal(t, 1, s.CriticalCount)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalReservoirs)
	assert.Equal(t, 0, s.AverageLevel)
	assert.Equal(t, 0, s.CriticalCount)
}
