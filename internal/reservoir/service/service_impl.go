package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/majilabs/oasis/internal/reservoir/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("reservoir.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReservoirRequest) (domain.Reservoir, error) {
	runout, err := parseRunoutDate(req.EstimatedRunoutDate)
	if err != nil {
		return domain.Reservoir{}, err
	}

	now := time.Now().UTC()
	res := domain.Reservoir{
		ID:                  s.genID.Generate(),
		Name:                strings.TrimSpace(req.Name),
		County:              strings.TrimSpace(req.County),
		SubCounty:           strings.TrimSpace(req.SubCounty),
		Ward:                strings.TrimSpace(req.Ward),
		WaterQuality:        defaulted(req.WaterQuality, domain.QualityGood),
		Status:              defaulted(req.Status, domain.StatusOperational),
		ManagedBy:           strings.TrimSpace(req.ManagedBy),
		Description:         strings.TrimSpace(req.Description),
		ContactPhone:        strings.TrimSpace(req.ContactPhone),
		ContactEmail:        strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		EstimatedRunoutDate: runout,
		Metadata:            datatypes.JSONMap{},
		LastUpdated:         now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.Latitude != nil {
		res.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		res.Longitude = *req.Longitude
	}
	if req.TotalCapacityM3 != nil {
		res.TotalCapacityM3 = *req.TotalCapacityM3
	}
	if req.CurrentLevelM3 != nil {
		res.CurrentLevelM3 = *req.CurrentLevelM3
	}
	missing := &domain.ValidationError{}
	if req.Latitude == nil {
		missing.Fields = append(missing.Fields, domain.FieldError{Field: "latitude", Code: "required", Message: "latitude is required"})
	}
	if req.Longitude == nil {
		missing.Fields = append(missing.Fields, domain.FieldError{Field: "longitude", Code: "required", Message: "longitude is required"})
	}
	if req.TotalCapacityM3 == nil {
		missing.Fields = append(missing.Fields, domain.FieldError{Field: "totalCapacityM3", Code: "required", Message: "total capacity is required"})
	}
	if req.CurrentLevelM3 == nil {
		missing.Fields = append(missing.Fields, domain.FieldError{Field: "currentLevelM3", Code: "required", Message: "current water level is required"})
	}
	if len(missing.Fields) > 0 {
		return domain.Reservoir{}, missing
	}

	if err := domain.Validate(&res); err != nil {
		return domain.Reservoir{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &res); err != nil {
		return domain.Reservoir{}, err
	}

	s.log.Info("reservoir created",
		zap.String("reservoir_id", res.ID.String()),
		zap.String("county", res.County),
	)
	return res, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateReservoirRequest) (domain.Reservoir, error) {
	resID, err := parseID(id)
	if err != nil {
		return domain.Reservoir{}, err
	}

	res, err := s.repo.FindByID(ctx, s.db, resID)
	if err != nil {
		return domain.Reservoir{}, err
	}
	if res == nil {
		return domain.Reservoir{}, domain.ErrNotFound
	}

	if req.Name != nil {
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.County != nil {
		res.County = strings.TrimSpace(*req.County)
	}
	if req.SubCounty != nil {
		res.SubCounty = strings.TrimSpace(*req.SubCounty)
	}
	if req.Ward != nil {
		res.Ward = strings.TrimSpace(*req.Ward)
	}
	if req.Latitude != nil {
		res.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		res.Longitude = *req.Longitude
	}
	if req.TotalCapacityM3 != nil {
		res.TotalCapacityM3 = *req.TotalCapacityM3
	}
	if req.CurrentLevelM3 != nil {
		res.CurrentLevelM3 = *req.CurrentLevelM3
	}
	if req.WaterQuality != nil {
		res.WaterQuality = strings.TrimSpace(*req.WaterQuality)
	}
	if req.Status != nil {
		res.Status = strings.TrimSpace(*req.Status)
	}
	if req.ManagedBy != nil {
		res.ManagedBy = strings.TrimSpace(*req.ManagedBy)
	}
	if req.Description != nil {
		res.Description = strings.TrimSpace(*req.Description)
	}
	if req.ContactPhone != nil {
		res.ContactPhone = strings.TrimSpace(*req.ContactPhone)
	}
	if req.ContactEmail != nil {
		res.ContactEmail = strings.ToLower(strings.TrimSpace(*req.ContactEmail))
	}
	if req.EstimatedRunoutDate != nil {
		runout, err := parseRunoutDate(*req.EstimatedRunoutDate)
		if err != nil {
			return domain.Reservoir{}, err
		}
		res.EstimatedRunoutDate = runout
	}

	if err := domain.Validate(res); err != nil {
		return domain.Reservoir{}, err
	}

	now := time.Now().UTC()
	res.LastUpdated = now
	res.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, res); err != nil {
		return domain.Reservoir{}, err
	}
	return *res, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	resID, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, resID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.log.Info("reservoir deleted", zap.String("reservoir_id", resID.String()))
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Reservoir, error) {
	resID, err := parseID(id)
	if err != nil {
		return domain.Reservoir{}, err
	}

	res, err := s.repo.FindByID(ctx, s.db, resID)
	if err != nil {
		return domain.Reservoir{}, err
	}
	if res == nil {
		return domain.Reservoir{}, domain.ErrNotFound
	}
	return *res, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Reservoir, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Reservoir, error) {
	return s.repo.Search(ctx, s.db, domain.SearchRequest{
		County:    strings.TrimSpace(req.County),
		SubCounty: strings.TrimSpace(req.SubCounty),
		Ward:      strings.TrimSpace(req.Ward),
	})
}

// ByStatus matches the status value exactly; an unknown status yields an
// empty result rather than an error.
func (s *Service) ByStatus(ctx context.Context, status string) ([]domain.Reservoir, error) {
	return s.repo.ByStatus(ctx, s.db, strings.TrimSpace(status))
}

func (s *Service) Critical(ctx context.Context) ([]domain.Reservoir, error) {
	return s.repo.Critical(ctx, s.db)
}

func (s *Service) RunningOutSoon(ctx context.Context, now time.Time) ([]domain.Reservoir, error) {
	return s.repo.RunningOutSoon(ctx, s.db, now)
}

func (s *Service) Recommend(ctx context.Context, filter domain.RecommendFilter) ([]domain.Reservoir, error) {
	return s.repo.Recommend(ctx, s.db, domain.RecommendFilter{
		Location:     strings.TrimSpace(filter.Location),
		WaterQuality: strings.TrimSpace(filter.WaterQuality),
		Capacity:     strings.TrimSpace(filter.Capacity),
	})
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseRunoutDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &domain.ValidationError{Fields: []domain.FieldError{{
		Field:   "estimatedRunoutDate",
		Code:    "invalid_date",
		Message: "estimated runout date must be RFC 3339 or YYYY-MM-DD",
	}}}
}

func defaulted(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
