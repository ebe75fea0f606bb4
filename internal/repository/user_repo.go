package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"store_rating_v1/internal/model"
)

// ==================== UserRepository ====================

// UserRepository user persistence
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetWithStore(ctx context.Context, id int64) (*model.UserWithStore, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]model.UserWithStore, error)
}

// UserFilter list conditions; empty fields are ignored, the rest are AND-combined.
type UserFilter struct {
	Name      string
	Email     string
	Address   string
	Role      model.Role
	SortBy    string
	SortOrder string
}

// userSortColumns sortBy value -> column
var userSortColumns = map[string]string{
	"name":      "users.name",
	"email":     "users.email",
	"address":   "users.address",
	"role":      "users.role",
	"createdAt": "users.created_at",
}

// UserSortable reports whether sortBy is an accepted user sort key.
func UserSortable(sortBy string) bool {
	_, ok := userSortColumns[sortBy]
	return ok
}

// ==================== impl ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithStore loads one user with its first owned store.
func (r *userRepository) GetWithStore(ctx context.Context, id int64) (*model.UserWithStore, error) {
	var rows []userStoreRow
	err := r.withStoreQuery(ctx).Where("users.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	u := rows[0].toModel()
	return &u, nil
}

// Update merges fields into the user row and returns the fresh record, nil when absent.
// Moving a user off the store role detaches its stores in the same transaction.
func (r *userRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (*model.User, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
			if role, ok := roleField(fields); ok && role != model.RoleStore {
				return tx.Model(&model.Store{}).
					Where("owner_id = ?", id).
					Update("owner_id", nil).Error
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func roleField(fields map[string]interface{}) (model.Role, bool) {
	switch v := fields["role"].(type) {
	case model.Role:
		return v, true
	case string:
		return model.Role(v), true
	}
	return "", false
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

// Delete removes the user with its ratings and detaches owned stores, in one transaction.
func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Store{}).
			Where("owner_id = ?", id).
			Update("owner_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	return found, err
}

// List returns users matching filter, each with its first owned store.
func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]model.UserWithStore, error) {
	query := r.withStoreQuery(ctx)

	if filter.Name != "" {
		query = query.Where("LOWER(users.name) LIKE ? ESCAPE '\\'", containsPattern(filter.Name))
	}
	if filter.Email != "" {
		query = query.Where("LOWER(users.email) LIKE ? ESCAPE '\\'", containsPattern(filter.Email))
	}
	if filter.Address != "" {
		query = query.Where("LOWER(users.address) LIKE ? ESCAPE '\\'", containsPattern(filter.Address))
	}
	if filter.Role != "" {
		query = query.Where("users.role = ?", filter.Role)
	}

	column, ok := userSortColumns[filter.SortBy]
	if !ok {
		column = userSortColumns["name"]
	}
	query = query.Order(column + " " + SortOrder(filter.SortOrder)).Order("users.id ASC")

	var rows []userStoreRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]model.UserWithStore, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

// withStoreQuery joins each user with the lowest-id store it owns.
func (r *userRepository) withStoreQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users").
		Select(strings.Join([]string{
			"users.*",
			"s.id AS store_id",
			"s.name AS store_name",
			"s.email AS store_email",
			"s.address AS store_address",
			"s.created_at AS store_created_at",
		}, ", ")).
		Joins("LEFT JOIN stores s ON s.id = (SELECT MIN(id) FROM stores WHERE stores.owner_id = users.id)")
}

// userStoreRow flat scan target of withStoreQuery
type userStoreRow struct {
	model.User
	StoreID        *int64
	StoreName      *string
	StoreEmail     *string
	StoreAddress   *string
	StoreCreatedAt *time.Time
}

func (row userStoreRow) toModel() model.UserWithStore {
	out := model.UserWithStore{User: row.User}
	if row.StoreID == nil {
		return out
	}

	ownerID := row.ID
	store := &model.Store{
		BaseModel: model.BaseModel{ID: *row.StoreID},
		OwnerID:   &ownerID,
	}
	if row.StoreName != nil {
		store.Name = *row.StoreName
	}
	if row.StoreEmail != nil {
		store.Email = *row.StoreEmail
	}
	if row.StoreAddress != nil {
		store.Address = *row.StoreAddress
	}
	if row.StoreCreatedAt != nil {
		store.CreatedAt = *row.StoreCreatedAt
	}
	out.Store = store
	return out
}
