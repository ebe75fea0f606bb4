package repository

import (
	"context"

	"gorm.io/gorm"

	"store_rating_v1/internal/model"
)

// StatsRepository platform-wide counters
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountStores(ctx context.Context) (int64, error)
	CountRatings(ctx context.Context) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.User{})
}

func (r *statsRepository) CountStores(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Store{})
}

func (r *statsRepository) CountRatings(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Rating{})
}

func (r *statsRepository) count(ctx context.Context, m interface{}) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(m).Count(&n).Error
	return n, err
}
