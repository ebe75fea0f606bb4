package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
)

// ==================== StoreService ====================

// StoreService store catalogue and owner dashboard
type StoreService struct {
	storeRepo  repository.StoreRepository
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
	log        logrus.FieldLogger
}

// NewStoreService creates the store service
func NewStoreService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	log logrus.FieldLogger,
) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		log:        log,
	}
}

// viewerID only raters see their own rating on each store
func viewerID(viewer *model.User) int64 {
	if viewer != nil && viewer.Role == model.RoleUser {
		return viewer.ID
	}
	return 0
}

// List returns stores with aggregates; a user-role viewer also gets userRating.
func (s *StoreService) List(ctx context.Context, viewer *model.User, q *dto.StoreListQuery) ([]*dto.StoreWithRatingInfo, error) {
	filter := repository.StoreFilter{
		Name:      q.Name,
		Address:   q.Address,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}

	stores, err := s.storeRepo.List(ctx, filter, viewerID(viewer))
	if err != nil {
		return nil, err
	}

	list := make([]*dto.StoreWithRatingInfo, 0, len(stores))
	for i := range stores {
		list = append(list, toStoreWithRatingInfo(&stores[i]))
	}
	return list, nil
}

// Get returns one store with aggregates.
func (s *StoreService) Get(ctx context.Context, viewer *model.User, id int64) (*dto.StoreWithRatingInfo, error) {
	store, err := s.storeRepo.GetWithRating(ctx, id, viewerID(viewer))
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return toStoreWithRatingInfo(store), nil
}

// Create adds a store. The owner, if any, must be a store-role user.
func (s *StoreService) Create(ctx context.Context, req *dto.CreateStoreRequest) (*dto.StoreInfo, error) {
	email := cleanEmail(req.Email)

	existing, err := s.storeRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStoreEmailTaken
	}

	if req.OwnerID != nil {
		if err := s.checkOwner(ctx, *req.OwnerID); err != nil {
			return nil, err
		}
	}

	store := &model.Store{
		Name:    req.Name,
		Email:   email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrStoreEmailTaken
		}
		return nil, err
	}
	return toStoreInfo(store), nil
}

// Update merges the given fields. ownerId 0 detaches the owner.
func (s *StoreService) Update(ctx context.Context, id int64, req *dto.UpdateStoreRequest) (*dto.StoreInfo, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Email != nil {
		email := cleanEmail(*req.Email)
		if email != store.Email {
			existing, err := s.storeRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != store.ID {
				return nil, ErrStoreEmailTaken
			}
			fields["email"] = email
		}
	}
	if req.OwnerID != nil {
		if *req.OwnerID == 0 {
			fields["owner_id"] = nil
		} else {
			if err := s.checkOwner(ctx, *req.OwnerID); err != nil {
				return nil, err
			}
			fields["owner_id"] = *req.OwnerID
		}
	}

	updated, err := s.storeRepo.Update(ctx, id, fields)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrStoreEmailTaken
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrStoreNotFound
	}
	return toStoreInfo(updated), nil
}

// Delete removes a store and its ratings.
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	found, err := s.storeRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrStoreNotFound
	}
	return nil
}

// Dashboard summarizes the owner's first store. Owners of several stores only see
// the lowest-id one.
func (s *StoreService) Dashboard(ctx context.Context, owner *model.User) (*dto.StoreDashboardResponse, error) {
	stores, err := s.storeRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, ErrNoOwnedStore
	}
	if len(stores) > 1 {
		s.log.WithFields(logrus.Fields{
			"owner_id": owner.ID,
			"stores":   len(stores),
		}).Warn("owner has several stores, dashboard shows the first")
	}

	store := &stores[0]
	ratings, err := s.ratingRepo.ListByStoreWithDetails(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	avg, err := s.ratingRepo.AverageForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StoreDashboardResponse{
		Store:         toStoreInfo(store),
		Ratings:       toRatingInfos(ratings),
		AverageRating: avg,
		TotalRatings:  len(ratings),
	}, nil
}

func (s *StoreService) checkOwner(ctx context.Context, ownerID int64) error {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner == nil || owner.Role != model.RoleStore {
		return ErrInvalidOwner
	}
	return nil
}
