package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_rating_v1/internal/model"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "Alice Wonderland Example", "alice@example.com", model.RoleUser)
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, model.RoleUser, got.Role)

	got, err = repo.GetByEmail(ctx, "Alice@Example.COM")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserRepo_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, got)

	withStore, err := repo.GetWithStore(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, withStore)

	updated, err := repo.Update(ctx, 999, map[string]interface{}{"name": "x"})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	found, err := repo.Delete(ctx, 999)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, db, "Alice Wonderland Example", "alice@example.com", model.RoleUser)

	err := repo.Create(context.Background(), &model.User{
		Name: "Another Alice Account", Email: "alice@example.com", Password: "x", Role: model.RoleUser,
	})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	err = repo.Create(context.Background(), &model.User{
		Name: "Shouting Alice Account", Email: "ALICE@Example.com", Password: "x", Role: model.RoleUser,
	})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err), "unique index ignores case")

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createUser(t, db, "Alice Wonderland Example", "alice@example.com", model.RoleUser)

	got, err := repo.Update(ctx, u.ID, map[string]interface{}{"address": "42 New Street"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "42 New Street", got.Address)
	assert.Equal(t, "Alice Wonderland Example", got.Name, "untouched fields are kept")

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-digest"))
	got, _ = repo.GetByID(ctx, u.ID)
	assert.Equal(t, "new-digest", got.Password)
}

func TestUserRepo_RoleChangeDetachesStores(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "Store Owner Account Name", "owner@example.com", model.RoleStore)
	store := createStore(t, db, "Corner Shop", "shop@example.com", &owner.ID)

	_, err := repo.Update(ctx, owner.ID, map[string]interface{}{"name": "Renamed Owner Account Name"})
	require.NoError(t, err)
	var kept model.Store
	require.NoError(t, db.First(&kept, store.ID).Error)
	require.NotNil(t, kept.OwnerID, "other updates keep ownership")

	got, err := repo.Update(ctx, owner.ID, map[string]interface{}{"role": model.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, got.Role)

	var detached model.Store
	require.NoError(t, db.First(&detached, store.ID).Error)
	assert.Nil(t, detached.OwnerID)
}

func TestUserRepo_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "Store Owner Account Name", "owner@example.com", model.RoleStore)
	rater := createUser(t, db, "Regular Rater Account Name", "rater@example.com", model.RoleUser)
	store := createStore(t, db, "Corner Shop", "shop@example.com", &owner.ID)
	createRating(t, db, rater.ID, store.ID, 4)

	found, err := repo.Delete(ctx, rater.ID)
	require.NoError(t, err)
	assert.True(t, found)

	var n int64
	db.Model(&model.Rating{}).Where("user_id = ?", rater.ID).Count(&n)
	assert.Equal(t, int64(0), n, "ratings of a deleted user are removed")

	found, err = repo.Delete(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, found)

	s, err := NewStoreRepository(db).GetByID(ctx, store.ID)
	require.NoError(t, err)
	require.NotNil(t, s, "owned store survives its owner")
	assert.Nil(t, s.OwnerID)
}

func TestUserRepo_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "Alice Wonderland Example", "alice@example.com", model.RoleUser)
	createUser(t, db, "Bob Builder Example Name", "bob@shop.com", model.RoleStore)
	createUser(t, db, "Carol Admin Example Name", "carol@example.com", model.RoleAdmin)

	tests := []struct {
		name   string
		filter UserFilter
		want   []string
	}{
		{"no filter sorted by name", UserFilter{}, []string{"alice@example.com", "bob@shop.com", "carol@example.com"}},
		{"name case-insensitive", UserFilter{Name: "ALICE"}, []string{"alice@example.com"}},
		{"email substring", UserFilter{Email: "example"}, []string{"alice@example.com", "carol@example.com"}},
		{"role exact", UserFilter{Role: model.RoleStore}, []string{"bob@shop.com"}},
		{"and-combined", UserFilter{Email: "example", Role: model.RoleAdmin}, []string{"carol@example.com"}},
		{"no match", UserFilter{Name: "zzz"}, []string{}},
		{"sort desc", UserFilter{SortBy: "email", SortOrder: "desc"}, []string{"carol@example.com", "bob@shop.com", "alice@example.com"}},
		{"unknown sort falls back to name", UserFilter{SortBy: "password"}, []string{"alice@example.com", "bob@shop.com", "carol@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			emails := make([]string, 0, len(users))
			for _, u := range users {
				emails = append(emails, u.Email)
			}
			assert.Equal(t, tt.want, emails)
		})
	}
}

func TestUserRepo_ListWithOwnedStore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "Store Owner Account Name", "owner@example.com", model.RoleStore)
	createUser(t, db, "Regular Rater Account Name", "rater@example.com", model.RoleUser)
	first := createStore(t, db, "First Shop", "first@example.com", &owner.ID)
	createStore(t, db, "Second Shop", "second@example.com", &owner.ID)

	users, err := repo.List(ctx, UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 2, "an owner with two stores is listed once")

	for _, u := range users {
		if u.ID == owner.ID {
			require.NotNil(t, u.Store)
			assert.Equal(t, first.ID, u.Store.ID)
			assert.Equal(t, "First Shop", u.Store.Name)
			assert.Equal(t, owner.ID, *u.Store.OwnerID)
		} else {
			assert.Nil(t, u.Store)
		}
	}

	one, err := repo.GetWithStore(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, one)
	require.NotNil(t, one.Store)
	assert.Equal(t, first.ID, one.Store.ID)
}

func TestUserRepo_ListFilterMatchesWildcardsLiterally(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, db, "Plain Account Holder Name", "first_last@example.com", model.RoleUser)
	createUser(t, db, "Other Account Holder Name", "firstxlast@example.com", model.RoleUser)

	users, err := repo.List(context.Background(), UserFilter{Email: "t_l"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "first_last@example.com", users[0].Email)
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Shop", "%shop%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c\d`, `%c\\d%`},
	}
	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
