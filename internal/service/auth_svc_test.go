package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/pkg/cache"
	"store_rating_v1/pkg/credential"
	"store_rating_v1/pkg/database"
)

// ==================== test helpers ====================

type testEnv struct {
	db      *gorm.DB
	hasher  *credential.PasswordHasher
	tokens  *credential.TokenManager
	logHook *test.Hook

	auth    *AuthService
	users   *UserService
	stores  *StoreService
	ratings *RatingService
	stats   *StatsService
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.Config(nil, false))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db, model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupServiceTestDB(t)

	tokens, err := credential.NewTokenManager(credential.TokenConfig{Secret: "test-secret"})
	require.NoError(t, err)
	hasher := credential.NewPasswordHasher(4)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	return &testEnv{
		db:      db,
		hasher:  hasher,
		tokens:  tokens,
		logHook: hook,
		auth:    NewAuthService(userRepo, hasher, tokens, cache.NewMemoryStore(), logger),
		users:   NewUserService(userRepo, hasher),
		stores:  NewStoreService(storeRepo, userRepo, ratingRepo, logger),
		ratings: NewRatingService(ratingRepo, storeRepo),
		stats:   NewStatsService(repository.NewStatsRepository(db)),
	}
}

// seedUser inserts a user whose password is "Secret12!".
func (e *testEnv) seedUser(t *testing.T, name, email string, role model.Role) *model.User {
	t.Helper()
	digest, err := e.hasher.Hash("Secret12!")
	require.NoError(t, err)
	u := &model.User{Name: name, Email: email, Password: digest, Address: "1 Main St", Role: role}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) seedStore(t *testing.T, name, email string, ownerID *int64) *model.Store {
	t.Helper()
	s := &model.Store{Name: name, Email: email, Address: "2 Market Rd", OwnerID: ownerID}
	require.NoError(t, e.db.Omit("Owner").Create(s).Error)
	return s
}

// ==================== AuthService ====================

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, &dto.RegisterRequest{
		Name:     "Alice Wonderland Example",
		Email:    "  Alice@Example.COM ",
		Password: "Secret12!",
		Address:  "1 Main St",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Alice@Example.COM", resp.User.Email, "email keeps its case, surrounding space trimmed")
	assert.Equal(t, "user", resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)

	var stored model.User
	require.NoError(t, env.db.First(&stored, resp.User.ID).Error)
	assert.NotEqual(t, "Secret12!", stored.Password)
	assert.True(t, env.hasher.Verify("Secret12!", stored.Password))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Alice Wonderland Example", "alice@example.com", model.RoleUser)

	_, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Another Alice Account Name",
		Email:    "ALICE@example.com",
		Password: "Secret12!",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "Alice Wonderland Example", "alice@example.com", model.RoleAdmin)

	resp, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "Alice@example.com", Password: "Secret12!"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.Equal(t, "admin", resp.User.Role)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "alice@example.com", Password: "Wrong123!"}},
		{"unknown email", dto.LoginRequest{Email: "bob@example.com", Password: "Secret12!"}},
		{"missing email", dto.LoginRequest{Password: "Secret12!"}},
		{"missing password", dto.LoginRequest{Email: "alice@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Login(ctx, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestAuthService_AuthenticateAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "Alice Wonderland Example", "alice@example.com", model.RoleUser)

	resp, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "Secret12!"})
	require.NoError(t, err)

	claims, user, err := env.auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	require.NoError(t, env.auth.Logout(ctx, claims))

	_, _, err = env.auth.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	other, err := credential.NewTokenManager(credential.TokenConfig{Secret: "another-secret"})
	require.NoError(t, err)
	forged, _, err := other.Issue(1, "x@example.com", "admin")
	require.NoError(t, err)
	_, _, err = env.auth.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ghost, _, err := env.tokens.Issue(9999, "ghost@example.com", "admin")
	require.NoError(t, err)
	_, _, err = env.auth.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, ErrUnauthenticated, "deleted users cannot authenticate")
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.seedUser(t, "Alice Wonderland Example", "alice@example.com", model.RoleUser)

	err := env.auth.ChangePassword(ctx, u, &dto.ChangePasswordRequest{CurrentPassword: "Nope1234!", NewPassword: "Newpass1!"})
	assert.True(t, errors.Is(err, ErrWrongPassword))

	err = env.auth.ChangePassword(ctx, u, &dto.ChangePasswordRequest{CurrentPassword: "Secret12!", NewPassword: "Newpass1!"})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "Newpass1!"})
	assert.NoError(t, err)
	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "Secret12!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
