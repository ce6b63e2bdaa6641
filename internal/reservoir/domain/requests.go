package domain

import "strings"

// CreateReservoirRequest carries a full record for creation.
type CreateReservoirRequest struct {
	Name                string   `json:"name"`
	County              string   `json:"county"`
	SubCounty           string   `json:"subCounty"`
	Ward                string   `json:"ward"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	TotalCapacityM3     *float64 `json:"totalCapacityM3"`
	CurrentLevelM3      *float64 `json:"currentLevelM3"`
	WaterQuality        string   `json:"waterQuality"`
	Status              string   `json:"status"`
	ManagedBy           string   `json:"managedBy"`
	Description         string   `json:"description"`
	ContactPhone        string   `json:"contactPhone"`
	ContactEmail        string   `json:"contactEmail"`
	EstimatedRunoutDate string   `json:"estimatedRunoutDate"`
}

// UpdateReservoirRequest replaces only the supplied fields. Nil pointers leave
// the stored value untouched.
type UpdateReservoirRequest struct {
	Name                *string  `json:"name"`
	County              *string  `json:"county"`
	SubCounty           *string  `json:"subCounty"`
	Ward                *string  `json:"ward"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	TotalCapacityM3     *float64 `json:"totalCapacityM3"`
	CurrentLevelM3      *float64 `json:"currentLevelM3"`
	WaterQuality        *string  `json:"waterQuality"`
	Status              *string  `json:"status"`
	ManagedBy           *string  `json:"managedBy"`
	Description         *string  `json:"description"`
	ContactPhone        *string  `json:"contactPhone"`
	ContactEmail        *string  `json:"contactEmail"`
	EstimatedRunoutDate *string  `json:"estimatedRunoutDate"`
}

// SearchRequest filters by location substrings; supplied criteria are
// conjunctive.
type SearchRequest struct {
	County    string
	SubCounty string
	Ward      string
}

// RecommendFilter selects recommendation candidates. Location matches any of
// county, sub-county or ward, unlike SearchRequest which is per-field.
type RecommendFilter struct {
	Location     string
	WaterQuality string
	Capacity     string
}

// Capacity buckets accepted by RecommendFilter. Any other value applies no
// capacity predicate.
const (
	CapacityHigh   = "high"
	CapacityMedium = "medium"

	RatioHigh   = 0.70
	RatioMedium = 0.30
)

// RecommendLimit caps the ranked candidate list.
const RecommendLimit = 10

// Validate checks the reservoir's invariants after a write request has been
// applied. currentLevel above totalCapacity is intentionally accepted.
func Validate(r *Reservoir) error {
	verr := &ValidationError{}

	if strings.TrimSpace(r.Name) == "" {
		verr.add("name", "required", "reservoir name is required")
	} else if len(r.Name) > MaxNameLength {
		verr.add("name", "too_long", "reservoir name cannot exceed 200 characters")
	}
	if strings.TrimSpace(r.County) == "" {
		verr.add("county", "required", "county is required")
	}
	if strings.TrimSpace(r.SubCounty) == "" {
		verr.add("subCounty", "required", "sub-county is required")
	}
	if r.Latitude < MinLatitude || r.Latitude > MaxLatitude {
		verr.add("latitude", "out_of_range", "latitude must be valid for Kenya")
	}
	if r.Longitude < MinLongitude || r.Longitude > MaxLongitude {
		verr.add("longitude", "out_of_range", "longitude must be valid for Kenya")
	}
	if r.TotalCapacityM3 < 0 {
		verr.add("totalCapacityM3", "negative", "total capacity must be positive")
	}
	if r.CurrentLevelM3 < 0 {
		verr.add("currentLevelM3", "negative", "current water level must be positive")
	}
	if !ValidQuality(r.WaterQuality) {
		verr.add("waterQuality", "invalid_enum", "unknown water quality grade")
	}
	if !ValidStatus(r.Status) {
		verr.add("status", "invalid_enum", "unknown status")
	}
	if len(r.Description) > MaxDescriptionLength {
		verr.add("description", "too_long", "description cannot exceed 1000 characters")
	}

	return verr.orNil()
}
