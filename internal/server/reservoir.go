package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	"github.com/majilabs/oasis/internal/reservoir/view"
)

func (s *Server) ListReservoirs(c *gin.Context) {
	records, err := s.reservoirSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.NewList(records, time.Now())})
}

func (s *Server) SearchReservoirs(c *gin.Context) {
	var query struct {
		County    string `form:"county"`
		SubCounty string `form:"subCounty"`
		Ward      string `form:"ward"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	records, err := s.reservoirSvc.Search(c.Request.Context(), reservoirdomain.SearchRequest{
		County:    strings.TrimSpace(query.County),
		SubCounty: strings.TrimSpace(query.SubCounty),
		Ward:      strings.TrimSpace(query.Ward),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.NewList(records, time.Now())})
}

func (s *Server) ListReservoirsByStatus(c *gin.Context) {
	status := strings.TrimSpace(c.Param("status"))

	records, err := s.reservoirSvc.ByStatus(c.Request.Context(), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.NewList(records, time.Now())})
}

func (s *Server) ListCriticalReservoirs(c *gin.Context) {
	records, err := s.reservoirSvc.Critical(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.NewList(records, time.Now())})
}

func (s *Server) ListRunningOutSoon(c *gin.Context) {
	now := time.Now()

	records, err := s.reservoirSvc.RunningOutSoon(c.Request.Context(), now)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.NewList(records, now)})
}

func (s *Server) GetReservoirSummary(c *gin.Context) {
	records, err := s.reservoirSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.Summarize(records)})
}

func (s *Server) GetReservoirByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	record, err := s.reservoirSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.New(record, time.Now())})
}

func (s *Server) CreateReservoir(c *gin.Context) {
	var req reservoirdomain.CreateReservoirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.reservoirSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": view.New(record, time.Now())})
}

func (s *Server) UpdateReservoir(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req reservoirdomain.UpdateReservoirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.reservoirSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view.New(record, time.Now())})
}

func (s *Server) DeleteReservoir(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.reservoirSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
