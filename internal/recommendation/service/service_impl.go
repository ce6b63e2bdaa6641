package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/majilabs/oasis/internal/insight"
	"github.com/majilabs/oasis/internal/recommendation/domain"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Reservoirs reservoirdomain.Service
	Insights   insight.Client
}

type Service struct {
	log        *zap.Logger
	reservoirs reservoirdomain.Service
	insights   insight.Client
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("recommendation.service"),
		reservoirs: p.Reservoirs,
		insights:   p.Insights,
	}
}

// candidateSummary is the per-reservoir digest forwarded to the AI service.
type candidateSummary struct {
	Name            string `json:"name"`
	County          string `json:"county"`
	SubCounty       string `json:"subCounty"`
	CurrentCapacity int    `json:"currentCapacity"`
	WaterQuality    string `json:"waterQuality"`
	Status          string `json:"status"`
}

func (s *Service) Recommend(ctx context.Context, req domain.RecommendRequest, requesterName string) (domain.RecommendResponse, error) {
	candidates, err := s.reservoirs.Recommend(ctx, reservoirdomain.RecommendFilter{
		Location:     req.Location,
		WaterQuality: req.WaterQuality,
		Capacity:     req.Capacity,
	})
	if err != nil {
		return domain.RecommendResponse{}, err
	}

	if len(candidates) == 0 {
		return domain.RecommendResponse{
			Reservoirs: []reservoirdomain.Reservoir{},
			Message:    domain.MessageNoMatches,
		}, nil
	}

	insights, err := s.insights.Generate(ctx, buildPrompt(candidates, requesterName))
	if err != nil {
		// External failure must not fail the request.
		s.log.Warn("insight enrichment unavailable",
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return domain.RecommendResponse{
			Reservoirs: candidates,
			Message:    domain.MessageDegraded,
		}, nil
	}

	return domain.RecommendResponse{
		Reservoirs: candidates,
		AIInsights: insights,
		Message:    domain.MessageWithInsights,
	}, nil
}

func buildPrompt(candidates []reservoirdomain.Reservoir, requesterName string) string {
	summaries := make([]candidateSummary, 0, len(candidates))
	for _, r := range candidates {
		summaries = append(summaries, candidateSummary{
			Name:            r.Name,
			County:          r.County,
			SubCounty:       r.SubCounty,
			CurrentCapacity: r.CapacityPercentage(),
			WaterQuality:    r.WaterQuality,
			Status:          r.Status,
		})
	}
	data, _ := json.Marshal(summaries)

	return fmt.Sprintf(`As a water management expert, analyze these Kenyan water reservoirs and provide personalized recommendations for user %s.

Reservoirs: %s

Please provide:
1. Top 3 recommended reservoirs with reasons
2. Water quality insights
3. Capacity management tips
4. Any urgent alerts or warnings

Keep the response concise and actionable.`, requesterName, data)
}
