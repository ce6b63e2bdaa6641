package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateReservoirRequest) (Reservoir, error)
	Update(ctx context.Context, id string, req UpdateReservoirRequest) (Reservoir, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Reservoir, error)
	List(ctx context.Context) ([]Reservoir, error)
	Search(ctx context.Context, req SearchRequest) ([]Reservoir, error)
	ByStatus(ctx context.Context, status string) ([]Reservoir, error)
	Critical(ctx context.Context) ([]Reservoir, error)
	RunningOutSoon(ctx context.Context, now time.Time) ([]Reservoir, error)
	Recommend(ctx context.Context, filter RecommendFilter) ([]Reservoir, error)
}
