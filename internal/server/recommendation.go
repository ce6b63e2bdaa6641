package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	recommendationdomain "github.com/majilabs/oasis/internal/recommendation/domain"
	"github.com/majilabs/oasis/internal/reservoir/view"
)

type recommendationResponse struct {
	Reservoirs []view.Reservoir `json:"reservoirs"`
	AIInsights string           `json:"aiInsights,omitempty"`
	Message    string           `json:"message,omitempty"`
}

func (s *Server) GetRecommendations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var query struct {
		Location     string `form:"location"`
		WaterQuality string `form:"waterQuality"`
		Capacity     string `form:"capacity"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recommendSvc.Recommend(c.Request.Context(), recommendationdomain.RecommendRequest{
		Location:     strings.TrimSpace(query.Location),
		WaterQuality: strings.TrimSpace(query.WaterQuality),
		Capacity:     strings.TrimSpace(query.Capacity),
	}, user.FullName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": recommendationResponse{
		Reservoirs: view.NewList(resp.Reservoirs, time.Now()),
		AIInsights: resp.AIInsights,
		Message:    resp.Message,
	}})
}
