package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
	"store_rating_v1/pkg/credential"
)

type userSeed struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     model.Role
}

type storeSeed struct {
	Name    string
	Email   string
	Address string
	Owned   bool
	Rating  int
}

var users = []userSeed{
	{"System Administrator Account", "admin@storerating.com", "Admin123!", "123 Admin Street, Admin City, AC 12345", model.RoleAdmin},
	{"John Doe Regular User Account", "user@storerating.com", "User123!", "456 User Avenue, User City, UC 67890", model.RoleUser},
	{"Jane Smith Store Owner Account", "store@storerating.com", "Store123!", "789 Store Boulevard, Store City, SC 11111", model.RoleStore},
}

var stores = []storeSeed{
	{"Amazing Electronics Store", "contact@amazingelectronics.com", "100 Tech Street, Electronics District, ED 22222", true, 5},
	{"Fresh Grocery Market", "info@freshgrocery.com", "200 Fresh Lane, Grocery Town, GT 33333", false, 4},
	{"Fashion Boutique Central", "hello@fashionboutique.com", "300 Style Avenue, Fashion City, FC 44444", false, 3},
}

// Seeder fills an empty database with demo accounts, stores and ratings.
type Seeder struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	ratings repository.RatingRepository
	hasher  *credential.PasswordHasher
	log     logrus.FieldLogger
}

func NewSeeder(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	hasher *credential.PasswordHasher,
	log logrus.FieldLogger,
) *Seeder {
	return &Seeder{
		users:   userRepo,
		stores:  storeRepo,
		ratings: ratingRepo,
		hasher:  hasher,
		log:     log,
	}
}

// Run is idempotent: rows that already exist (matched by email, or by user and store for ratings) are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	byRole := make(map[model.Role]*model.User, len(users))
	for _, u := range users {
		user, err := s.ensureUser(ctx, u)
		if err != nil {
			return err
		}
		byRole[u.Role] = user
	}

	rater := byRole[model.RoleUser]
	owner := byRole[model.RoleStore]

	for _, st := range stores {
		var ownerID *int64
		if st.Owned {
			id := owner.ID
			ownerID = &id
		}
		store, err := s.ensureStore(ctx, st, ownerID)
		if err != nil {
			return err
		}
		if err := s.ensureRating(ctx, rater.ID, store.ID, st.Rating); err != nil {
			return err
		}
	}

	s.log.WithFields(logrus.Fields{
		"users":  len(users),
		"stores": len(stores),
	}).Info("seed complete")
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, in userSeed) (*model.User, error) {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", in.Email, err)
	}
	if existing != nil {
		s.log.WithField("email", in.Email).Debug("user exists, skipped")
		return existing, nil
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: digest,
		Address:  in.Address,
		Role:     in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", in.Email, err)
	}
	s.log.WithFields(logrus.Fields{"email": in.Email, "role": in.Role}).Info("user created")
	return user, nil
}

func (s *Seeder) ensureStore(ctx context.Context, in storeSeed, ownerID *int64) (*model.Store, error) {
	existing, err := s.stores.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup store %s: %w", in.Email, err)
	}
	if existing != nil {
		return existing, nil
	}

	store := &model.Store{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		OwnerID: ownerID,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store %s: %w", in.Email, err)
	}
	s.log.WithField("store", in.Name).Info("store created")
	return store, nil
}

func (s *Seeder) ensureRating(ctx context.Context, userID, storeID int64, value int) error {
	existing, err := s.ratings.GetByUserAndStore(ctx, userID, storeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.ratings.Create(ctx, &model.Rating{UserID: userID, StoreID: storeID, Rating: value})
}
