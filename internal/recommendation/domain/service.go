// Package domain contains types for reservoir recommendations.
package domain

import (
	"context"

	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
)

// Status messages attached to recommendation responses.
const (
	MessageWithInsights = "Recommendations generated with AI insights"
	MessageDegraded     = "Basic recommendations (AI temporarily unavailable)"
	MessageNoMatches    = "No reservoirs match your criteria"
)

// RecommendRequest carries caller preference criteria.
type RecommendRequest struct {
	Location     string
	WaterQuality string
	Capacity     string
}

// RecommendResponse is the ranked candidate list, optionally enriched with
// free-text commentary from the external AI service.
type RecommendResponse struct {
	Reservoirs []reservoirdomain.Reservoir `json:"reservoirs"`
	AIInsights string                      `json:"aiInsights,omitempty"`
	Message    string                      `json:"message,omitempty"`
}

type Service interface {
	Recommend(ctx context.Context, req RecommendRequest, requesterName string) (RecommendResponse, error)
}
