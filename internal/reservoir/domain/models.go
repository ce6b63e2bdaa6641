// Package domain contains core types for the reservoir registry.
package domain

import (
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Water quality grades.
const (
	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityFair      = "fair"
	QualityPoor      = "poor"
)

// Operational statuses.
const (
	StatusOperational    = "operational"
	StatusMaintenance    = "maintenance"
	StatusCritical       = "critical"
	StatusDecommissioned = "decommissioned"
)

// CriticalLevelRatio is the fullness ratio below which a reservoir counts as
// critically depleted.
const CriticalLevelRatio = 0.20

// RunoutWindow is the horizon for the running-out-soon query.
const RunoutWindow = 30 * 24 * time.Hour

// Geographic bounds for plausible reservoir coordinates (Kenya).
const (
	MinLatitude  = -4.5
	MaxLatitude  = 4.5
	MinLongitude = 33.5
	MaxLongitude = 42.0
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
)

// Reservoir is a tracked water-storage entity.
type Reservoir struct {
	ID                  snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name                string            `gorm:"type:text;not null;index" json:"name"`
	County              string            `gorm:"type:text;not null;index" json:"county"`
	SubCounty           string            `gorm:"column:sub_county;type:text;not null;index" json:"subCounty"`
	Ward                string            `gorm:"type:text" json:"ward,omitempty"`
	Latitude            float64           `gorm:"not null" json:"latitude"`
	Longitude           float64           `gorm:"not null" json:"longitude"`
	TotalCapacityM3     float64           `gorm:"column:total_capacity_m3;not null" json:"totalCapacityM3"`
	CurrentLevelM3      float64           `gorm:"column:current_level_m3;not null" json:"currentLevelM3"`
	WaterQuality        string            `gorm:"column:water_quality;type:text;not null;default:good" json:"waterQuality"`
	Status              string            `gorm:"type:text;not null;default:operational" json:"status"`
	ManagedBy           string            `gorm:"column:managed_by;type:text" json:"managedBy,omitempty"`
	Description         string            `gorm:"type:text" json:"description,omitempty"`
	ContactPhone        string            `gorm:"column:contact_phone;type:text" json:"contactPhone,omitempty"`
	ContactEmail        string            `gorm:"column:contact_email;type:text" json:"contactEmail,omitempty"`
	EstimatedRunoutDate *time.Time        `gorm:"column:estimated_runout_date" json:"estimatedRunoutDate,omitempty"`
	LastUpdated         time.Time         `gorm:"column:last_updated;not null" json:"lastUpdated"`
	Metadata            datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName sets the database table name.
func (Reservoir) TableName() string { return "reservoirs" }

// CapacityRatio returns fractional fullness. The second return is false when
// the ratio is undefined because total capacity is zero.
func (r Reservoir) CapacityRatio() (float64, bool) {
	if r.TotalCapacityM3 <= 0 {
		return 0, false
	}
	return r.CurrentLevelM3 / r.TotalCapacityM3, true
}

// CapacityPercentage returns rounded percentage fullness, 0 when total
// capacity is zero.
func (r Reservoir) CapacityPercentage() int {
	ratio, ok := r.CapacityRatio()
	if !ok {
		return 0
	}
	return int(math.Round(ratio * 100))
}

// ValidQuality reports whether q is a known water-quality grade.
func ValidQuality(q string) bool {
	switch q {
	case QualityExcellent, QualityGood, QualityFair, QualityPoor:
		return true
	default:
		return false
	}
}

// ValidStatus reports whether s is a known operational status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOperational, StatusMaintenance, StatusCritical, StatusDecommissioned:
		return true
	default:
		return false
	}
}
