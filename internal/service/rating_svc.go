package service

import (
	"context"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/repository"
)

// ==================== RatingService ====================

// RatingService rating submission and listing
type RatingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

// NewRatingService creates the rating service
func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, storeRepo: storeRepo}
}

// List returns every rating with details, newest first.
func (s *RatingService) List(ctx context.Context) ([]*dto.RatingInfo, error) {
	ratings, err := s.ratingRepo.ListWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return toRatingInfos(ratings), nil
}

// ListByStore returns a store's ratings. Store-role callers must own the store; for
// them a missing store is ErrStoreNotOwned as well.
func (s *RatingService) ListByStore(ctx context.Context, actor *model.User, storeID int64) ([]*dto.RatingInfo, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStore && (store == nil || store.OwnerID == nil || *store.OwnerID != actor.ID) {
		return nil, ErrStoreNotOwned
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	ratings, err := s.ratingRepo.ListByStoreWithDetails(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toRatingInfos(ratings), nil
}

// Create records the caller's first rating of a store.
func (s *RatingService) Create(ctx context.Context, actor *model.User, req *dto.CreateRatingRequest) (*dto.RatingInfo, error) {
	if !model.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	existing, err := s.ratingRepo.GetByUserAndStore(ctx, actor.ID, req.StoreID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRated
	}

	rating := &model.Rating{
		UserID:  actor.ID,
		StoreID: req.StoreID,
		Rating:  req.Rating,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		// lost a concurrent double-submit
		if repository.IsDuplicateKey(err) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	return toRatingInfo(rating), nil
}

// Update changes the caller's existing rating of a store in place.
func (s *RatingService) Update(ctx context.Context, actor *model.User, storeID int64, req *dto.UpdateRatingRequest) (*dto.RatingInfo, error) {
	if !model.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	rating, err := s.ratingRepo.UpdateByUserAndStore(ctx, actor.ID, storeID, req.Rating)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	return toRatingInfo(rating), nil
}

// Delete removes a rating by id.
func (s *RatingService) Delete(ctx context.Context, id int64) error {
	found, err := s.ratingRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrRatingNotFound
	}
	return nil
}
