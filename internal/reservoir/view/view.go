// Package view computes display-derived fields for reservoir records.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/majilabs/oasis/internal/reservoir/domain"
)

// Severity buckets used by the dashboard status indicator.
const (
	SeverityGood     = "good"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Display thresholds. The summary critical count uses a strict <20 cutoff,
// which does not line up with the 70/40 indicator boundaries; both are kept
// as-is.
const (
	goodThreshold     = 70
	warningThreshold  = 40
	criticalThreshold = 20
)

// Reservoir is the wire representation of a record with derived fields.
type Reservoir struct {
	domain.Reservoir
	CurrentCapacityPercentage int    `json:"currentCapacityPercentage"`
	Severity                  string `json:"severity"`
	DaysUntilRunout           *int   `json:"daysUntilRunout,omitempty"`
	RunoutMessage             string `json:"runoutMessage,omitempty"`
}

// Summary aggregates a fetched record set for the dashboard header.
type Summary struct {
	TotalReservoirs int `json:"totalReservoirs"`
	AverageLevel    int `json:"averageLevel"`
	CriticalCount   int `json:"criticalCount"`
}

// New builds the display representation of a single record.
func New(r domain.Reservoir, now time.Time) Reservoir {
	pct := r.CapacityPercentage()
	out := Reservoir{
		Reservoir:                 r,
		CurrentCapacityPercentage: pct,
		Severity:                  Severity(pct),
	}
	if days, ok := DaysUntilRunout(r.EstimatedRunoutDate, now); ok {
		out.DaysUntilRunout = &days
		if days > 0 {
			out.RunoutMessage = fmt.Sprintf("Will run out in approximately %d days", days)
		} else {
			out.RunoutMessage = "Estimated runout date has passed"
		}
	}
	return out
}

// NewList builds display representations for a record set, preserving order.
func NewList(records []domain.Reservoir, now time.Time) []Reservoir {
	out := make([]Reservoir, 0, len(records))
	for _, r := range records {
		out = append(out, New(r, now))
	}
	return out
}

// Severity maps a capacity percentage to a status bucket.
func Severity(pct int) string {
	switch {
	case pct >= goodThreshold:
		return SeverityGood
	case pct >= warningThreshold:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// DaysUntilRunout returns ceil days between now and the runout date. The
// second return is false when no runout date is set. Non-positive values mean
// the date has already passed.
func DaysUntilRunout(runout *time.Time, now time.Time) (int, bool) {
	if runout == nil {
		return 0, false
	}
	diff := runout.Sub(now)
	return int(math.Ceil(diff.Hours() / 24)), true
}

// Summarize computes dashboard aggregates over a record set.
func Summarize(records []domain.Reservoir) Summary {
	s := Summary{TotalReservoirs: len(records)}
	if len(records) == 0 {
		return s
	}

	total := 0
	for _, r := range records {
		pct := r.CapacityPercentage()
		total += pct
		if pct < criticalThreshold {
			s.CriticalCount++
		}
	}
	s.AverageLevel = int(math.Round(float64(total) / float64(len(records))))
	return s
}
