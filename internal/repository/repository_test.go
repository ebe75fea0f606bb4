package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"store_rating_v1/internal/model"
	"store_rating_v1/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.Config(nil, false))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// one connection keeps the in-memory database shared
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db, model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, Password: "digest", Address: "1 Main St", Role: role}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createStore(t *testing.T, db *gorm.DB, name, email string, ownerID *int64) *model.Store {
	t.Helper()
	s := &model.Store{Name: name, Email: email, Address: "2 Market Rd", OwnerID: ownerID}
	require.NoError(t, NewStoreRepository(db).Create(context.Background(), s))
	return s
}

func createRating(t *testing.T, db *gorm.DB, userID, storeID int64, value int) *model.Rating {
	t.Helper()
	r := &model.Rating{UserID: userID, StoreID: storeID, Rating: value}
	require.NoError(t, NewRatingRepository(db).Create(context.Background(), r))
	return r
}
