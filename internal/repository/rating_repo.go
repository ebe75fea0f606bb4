package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"store_rating_v1/internal/model"
)

// ==================== RatingRepository ====================

// RatingRepository rating persistence
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	GetByUserAndStore(ctx context.Context, userID, storeID int64) (*model.Rating, error)
	UpdateByUserAndStore(ctx context.Context, userID, storeID int64, value int) (*model.Rating, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListWithDetails(ctx context.Context) ([]model.Rating, error)
	ListByStoreWithDetails(ctx context.Context, storeID int64) ([]model.Rating, error)
	AverageForStore(ctx context.Context, storeID int64) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a rating repository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Omit("User", "Store").Create(rating).Error
}

func (r *ratingRepository) GetByUserAndStore(ctx context.Context, userID, storeID int64) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpdateByUserAndStore sets a new value and refreshes updated_at. Returns nil when no rating exists.
func (r *ratingRepository) UpdateByUserAndStore(ctx context.Context, userID, storeID int64, value int) (*model.Rating, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Updates(map[string]interface{}{
			"rating":     value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByUserAndStore(ctx, userID, storeID)
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Rating{}, id)
	return result.RowsAffected > 0, result.Error
}

// ListWithDetails returns every rating with rater and store, newest first.
func (r *ratingRepository) ListWithDetails(ctx context.Context) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.detailQuery(ctx).Find(&ratings).Error
	return ratings, err
}

// ListByStoreWithDetails returns a store's ratings with rater and store, newest first.
func (r *ratingRepository) ListByStoreWithDetails(ctx context.Context, storeID int64) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.detailQuery(ctx).
		Where("ratings.store_id = ?", storeID).
		Find(&ratings).Error
	return ratings, err
}

// AverageForStore is the unrounded mean, 0 when the store has no ratings.
func (r *ratingRepository) AverageForStore(ctx context.Context, storeID int64) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("CAST(COALESCE(AVG(rating), 0) AS DOUBLE PRECISION)").
		Where("store_id = ?", storeID).
		Scan(&avg).Error
	return avg, err
}

func (r *ratingRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("User").
		Joins("Store").
		Order("ratings.created_at DESC").
		Order("ratings.id DESC")
}
