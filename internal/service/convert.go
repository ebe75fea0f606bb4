package service

import (
	"strings"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
)

// cleanEmail trims surrounding space. Case is kept as submitted; lookups and the
// unique index compare emails case-insensitively.
func cleanEmail(email string) string {
	return strings.TrimSpace(email)
}

func toUserInfo(u *model.User) *dto.UserInfo {
	if u == nil {
		return nil
	}
	return &dto.UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toUserWithStoreInfo(u *model.UserWithStore) *dto.UserInfo {
	info := toUserInfo(&u.User)
	info.Store = toStoreInfo(u.Store)
	return info
}

func toStoreInfo(s *model.Store) *dto.StoreInfo {
	if s == nil {
		return nil
	}
	return &dto.StoreInfo{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
	}
}

func toStoreWithRatingInfo(s *model.StoreWithRating) *dto.StoreWithRatingInfo {
	return &dto.StoreWithRatingInfo{
		StoreInfo:     *toStoreInfo(&s.Store),
		AverageRating: s.AverageRating,
		TotalRatings:  s.TotalRatings,
		UserRating:    s.UserRating,
	}
}

func toRatingInfo(r *model.Rating) *dto.RatingInfo {
	return &dto.RatingInfo{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      toUserInfo(r.User),
		Store:     toStoreInfo(r.Store),
	}
}

func toRatingInfos(ratings []model.Rating) []*dto.RatingInfo {
	list := make([]*dto.RatingInfo, 0, len(ratings))
	for i := range ratings {
		list = append(list, toRatingInfo(&ratings[i]))
	}
	return list
}
