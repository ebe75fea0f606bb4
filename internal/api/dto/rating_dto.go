package dto

import "time"

// CreateRatingRequest first rating of a store by the caller
type CreateRatingRequest struct {
	StoreID int64 `json:"storeId" binding:"required,gt=0"`
	Rating  int   `json:"rating" binding:"required,min=1,max=5"`
}

// UpdateRatingRequest re-rating; the store comes from the path
type UpdateRatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingInfo rating, with rater and store when listed with details
type RatingInfo struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	StoreID   int64      `json:"storeId"`
	Rating    int        `json:"rating"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      *UserInfo  `json:"user,omitempty"`
	Store     *StoreInfo `json:"store,omitempty"`
}

// StatsResponse platform counters
type StatsResponse struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// MessageResponse confirmation body
type MessageResponse struct {
	Message string `json:"message"`
}
