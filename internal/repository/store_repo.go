package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"store_rating_v1/internal/model"
)

// ==================== StoreRepository ====================

// StoreRepository store persistence
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	GetByEmail(ctx context.Context, email string) (*model.Store, error)
	GetWithRating(ctx context.Context, id int64, viewerID int64) (*model.StoreWithRating, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.Store, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter StoreFilter, viewerID int64) ([]model.StoreWithRating, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Store, error)
}

// StoreFilter list conditions
type StoreFilter struct {
	Name      string
	Address   string
	SortBy    string
	SortOrder string
}

var storeSortColumns = map[string]string{
	"name":          "stores.name",
	"email":         "stores.email",
	"address":       "stores.address",
	"createdAt":     "stores.created_at",
	"averageRating": "average_rating",
	"totalRatings":  "total_ratings",
}

// StoreSortable reports whether sortBy is an accepted store sort key.
func StoreSortable(sortBy string) bool {
	_, ok := storeSortColumns[sortBy]
	return ok
}

// ==================== impl ====================

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a store repository
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetByEmail(ctx context.Context, email string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// GetWithRating loads one store with its aggregates; viewerID > 0 adds that user's rating.
func (r *storeRepository) GetWithRating(ctx context.Context, id int64, viewerID int64) (*model.StoreWithRating, error) {
	var rows []model.StoreWithRating
	err := r.aggregateQuery(ctx, viewerID).
		Where("stores.id = ?", id).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Update merges fields and returns the fresh record, nil when absent.
func (r *storeRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.Store, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&model.Store{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the store and its ratings in one transaction.
func (r *storeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Store{}, id)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	return found, err
}

// List returns stores with rating aggregates; viewerID > 0 fills UserRating.
func (r *storeRepository) List(ctx context.Context, filter StoreFilter, viewerID int64) ([]model.StoreWithRating, error) {
	query := r.aggregateQuery(ctx, viewerID)

	if filter.Name != "" {
		query = query.Where("LOWER(stores.name) LIKE ? ESCAPE '\\'", containsPattern(filter.Name))
	}
	if filter.Address != "" {
		query = query.Where("LOWER(stores.address) LIKE ? ESCAPE '\\'", containsPattern(filter.Address))
	}

	column, ok := storeSortColumns[filter.SortBy]
	if !ok {
		column = storeSortColumns["name"]
	}
	query = query.Order(column + " " + SortOrder(filter.SortOrder)).Order("stores.id ASC")

	stores := make([]model.StoreWithRating, 0)
	if err := query.Scan(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&stores).Error
	return stores, err
}

// aggregateQuery groups stores with their ratings. The viewer join matches at most
// one row per store because (user_id, store_id) is unique, so counts are unaffected.
func (r *storeRepository) aggregateQuery(ctx context.Context, viewerID int64) *gorm.DB {
	columns := []string{
		"stores.*",
		"CAST(COALESCE(AVG(ratings.rating), 0) AS DOUBLE PRECISION) AS average_rating",
		"COUNT(ratings.id) AS total_ratings",
	}

	query := r.db.WithContext(ctx).
		Table("stores").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id")

	if viewerID > 0 {
		columns = append(columns, "MAX(ur.rating) AS user_rating")
		query = query.Joins("LEFT JOIN ratings ur ON ur.store_id = stores.id AND ur.user_id = ?", viewerID)
	}

	return query.Select(strings.Join(columns, ", ")).Group("stores.id")
}
