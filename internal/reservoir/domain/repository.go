package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, r *Reservoir) error
	Update(ctx context.Context, db *gorm.DB, r *Reservoir) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Reservoir, error)
	List(ctx context.Context, db *gorm.DB) ([]Reservoir, error)
	Search(ctx context.Context, db *gorm.DB, req SearchRequest) ([]Reservoir, error)
	ByStatus(ctx context.Context, db *gorm.DB, status string) ([]Reservoir, error)
	Critical(ctx context.Context, db *gorm.DB) ([]Reservoir, error)
	RunningOutSoon(ctx context.Context, db *gorm.DB, now time.Time) ([]Reservoir, error)
	Recommend(ctx context.Context, db *gorm.DB, filter RecommendFilter) ([]Reservoir, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
