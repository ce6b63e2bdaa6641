package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/majilabs/oasis/internal/reservoir/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, res *domain.Reservoir) error {
	return db.WithContext(ctx).Create(res).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, res *domain.Reservoir) error {
	// Full-row save: last write wins, no version check.
	return db.WithContext(ctx).Save(res).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.Reservoir{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Reservoir, error) {
	var res domain.Reservoir
	err := db.WithContext(ctx).First(&res, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Reservoir, error) {
	var out []domain.Reservoir
	err := db.WithContext(ctx).
		Order("name asc").
		Find(&out).Error
	return out, err
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, req domain.SearchRequest) ([]domain.Reservoir, error) {
	stmt := db.WithContext(ctx).Model(&domain.Reservoir{})
	if req.County != "" {
		stmt = stmt.Where("LOWER(county) LIKE LOWER(?)", contains(req.County))
	}
	if req.SubCounty != "" {
		stmt = stmt.Where("LOWER(sub_county) LIKE LOWER(?)", contains(req.SubCounty))
	}
	if req.Ward != "" {
		stmt = stmt.Where("LOWER(ward) LIKE LOWER(?)", contains(req.Ward))
	}

	var out []domain.Reservoir
	err := stmt.Order("name asc").Find(&out).Error
	return out, err
}

func (r *repo) ByStatus(ctx context.Context, db *gorm.DB, status string) ([]domain.Reservoir, error) {
	var out []domain.Reservoir
	err := db.WithContext(ctx).
		Where("status = ?", status).
		Order("name asc").
		Find(&out).Error
	return out, err
}

// Critical returns reservoirs below the critical fullness ratio, most
// depleted first. Rows with zero total capacity have no defined ratio and are
// excluded.
func (r *repo) Critical(ctx context.Context, db *gorm.DB) ([]domain.Reservoir, error) {
	var out []domain.Reservoir
	err := db.WithContext(ctx).
		Where("total_capacity_m3 > 0 AND current_level_m3 / total_capacity_m3 < ?", domain.CriticalLevelRatio).
		Order("current_level_m3 asc").
		Find(&out).Error
	return out, err
}

func (r *repo) RunningOutSoon(ctx context.Context, db *gorm.DB, now time.Time) ([]domain.Reservoir, error) {
	var out []domain.Reservoir
	err := db.WithContext(ctx).
		Where("estimated_runout_date IS NOT NULL AND estimated_runout_date >= ? AND estimated_runout_date <= ?",
			now, now.Add(domain.RunoutWindow)).
		Order("estimated_runout_date asc").
		Find(&out).Error
	return out, err
}

func (r *repo) Recommend(ctx context.Context, db *gorm.DB, filter domain.RecommendFilter) ([]domain.Reservoir, error) {
	stmt := db.WithContext(ctx).Model(&domain.Reservoir{})

	if filter.Location != "" {
		// Any of the three location fields may match, unlike Search.
		loc := contains(filter.Location)
		stmt = stmt.Where(
			"LOWER(county) LIKE LOWER(?) OR LOWER(sub_county) LIKE LOWER(?) OR LOWER(ward) LIKE LOWER(?)",
			loc, loc, loc,
		)
	}
	if filter.WaterQuality != "" {
		stmt = stmt.Where("water_quality = ?", filter.WaterQuality)
	}
	switch filter.Capacity {
	case domain.CapacityHigh:
		stmt = stmt.Where("total_capacity_m3 > 0 AND current_level_m3 / total_capacity_m3 >= ?", domain.RatioHigh)
	case domain.CapacityMedium:
		stmt = stmt.Where("total_capacity_m3 > 0 AND current_level_m3 / total_capacity_m3 >= ? AND current_level_m3 / total_capacity_m3 < ?",
			domain.RatioMedium, domain.RatioHigh)
	}

	var out []domain.Reservoir
	err := stmt.
		Order("current_level_m3 desc").
		Limit(domain.RecommendLimit).
		Find(&out).Error
	return out, err
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Reservoir{}).Count(&n).Error
	return n, err
}

func contains(s string) string {
	return "%" + s + "%"
}
