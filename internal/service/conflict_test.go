package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/pkg/cache"
)

// The stale* repositories miss rows on the pre-insert lookup, the way a concurrent
// request does between the check and the insert. The unique index must still win.

type staleRatingRepo struct{ repository.RatingRepository }

func (staleRatingRepo) GetByUserAndStore(context.Context, int64, int64) (*model.Rating, error) {
	return nil, nil
}

type staleUserRepo struct{ repository.UserRepository }

func (staleUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, nil
}

type staleStoreRepo struct{ repository.StoreRepository }

func (staleStoreRepo) GetByEmail(context.Context, string) (*model.Store, error) {
	return nil, nil
}

func countRows(t *testing.T, env *testEnv, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(m).Count(&n).Error)
	return n
}

func TestRatingService_CreateRaceHitsUniqueIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rater := env.seedUser(t, "Regular Rater Account Name", "rater@example.com", model.RoleUser)
	store := env.seedStore(t, "Corner Shop", "shop@example.com", nil)
	require.NoError(t, env.db.Create(&model.Rating{UserID: rater.ID, StoreID: store.ID, Rating: 2}).Error)

	svc := NewRatingService(
		staleRatingRepo{repository.NewRatingRepository(env.db)},
		repository.NewStoreRepository(env.db),
	)
	_, err := svc.Create(ctx, rater, &dto.CreateRatingRequest{StoreID: store.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, int64(1), countRows(t, env, &model.Rating{}))
	var kept model.Rating
	require.NoError(t, env.db.First(&kept).Error)
	assert.Equal(t, 2, kept.Rating)
}

func TestUserEmailRaceHitsUniqueIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedUser(t, "System Administrator Account", "admin@example.com", model.RoleAdmin)
	env.seedUser(t, "Alice Wonderland Example", "alice@example.com", model.RoleUser)
	bob := env.seedUser(t, "Bob Builder Example Account", "bob@example.com", model.RoleUser)

	logger, _ := test.NewNullLogger()
	users := staleUserRepo{repository.NewUserRepository(env.db)}
	auth := NewAuthService(users, env.hasher, env.tokens, cache.NewMemoryStore(), logger)
	userSvc := NewUserService(users, env.hasher)

	_, err := auth.Register(ctx, &dto.RegisterRequest{
		Name: "Another Alice Account Name", Email: "ALICE@example.com", Password: "Secret12!",
	})
	assert.ErrorIs(t, err, ErrEmailTaken, "register")

	_, err = userSvc.Create(ctx, &dto.CreateUserRequest{
		Name: "Another Alice Account Name", Email: "alice@example.com", Password: "Secret12!", Role: "user",
	})
	assert.ErrorIs(t, err, ErrEmailTaken, "admin create")

	_, err = userSvc.Update(ctx, admin, bob.ID, &dto.UpdateUserRequest{Email: strPtr("Alice@Example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken, "update")

	assert.Equal(t, int64(3), countRows(t, env, &model.User{}))
	var reloaded model.User
	require.NoError(t, env.db.First(&reloaded, bob.ID).Error)
	assert.Equal(t, "bob@example.com", reloaded.Email)
}

func TestStoreEmailRaceHitsUniqueIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedStore(t, "Corner Shop", "shop@example.com", nil)
	other := env.seedStore(t, "Market Hall", "market@example.com", nil)

	logger, _ := test.NewNullLogger()
	svc := NewStoreService(
		staleStoreRepo{repository.NewStoreRepository(env.db)},
		repository.NewUserRepository(env.db),
		repository.NewRatingRepository(env.db),
		logger,
	)

	_, err := svc.Create(ctx, &dto.CreateStoreRequest{Name: "Copy Shop", Email: "Shop@Example.com", Address: "x"})
	assert.ErrorIs(t, err, ErrStoreEmailTaken, "create")

	email := "SHOP@example.com"
	_, err = svc.Update(ctx, other.ID, &dto.UpdateStoreRequest{Email: &email})
	assert.ErrorIs(t, err, ErrStoreEmailTaken, "update")

	assert.Equal(t, int64(2), countRows(t, env, &model.Store{}))
	var reloaded model.Store
	require.NoError(t, env.db.First(&reloaded, other.ID).Error)
	assert.Equal(t, "market@example.com", reloaded.Email)
}
