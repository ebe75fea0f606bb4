package dto

import "time"

// ==================== Store ====================

// CreateStoreRequest admin store creation
type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Address string `json:"address" binding:"omitempty,max=400"`
	OwnerID *int64 `json:"ownerId" binding:"omitempty,gt=0"`
}

// UpdateStoreRequest partial update. ownerId 0 detaches the owner.
type UpdateStoreRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email   *string `json:"email" binding:"omitempty,email,max=255"`
	Address *string `json:"address" binding:"omitempty,max=400"`
	OwnerID *int64  `json:"ownerId" binding:"omitempty,gte=0"`
}

// StoreListQuery filters for GET /api/stores
type StoreListQuery struct {
	Name      string `form:"name"`
	Address   string `form:"address"`
	SortBy    string `form:"sortBy" binding:"omitempty,oneof=name email address createdAt averageRating totalRatings"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// StoreInfo store fields
type StoreInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   *int64    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoreWithRatingInfo store with aggregates; userRating only when the viewer rated it
type StoreWithRatingInfo struct {
	StoreInfo
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
	UserRating    *int    `json:"userRating,omitempty"`
}

// StoreDashboardResponse owner view of their store
type StoreDashboardResponse struct {
	Store         *StoreInfo    `json:"store"`
	Ratings       []*RatingInfo `json:"ratings"`
	AverageRating float64       `json:"averageRating"`
	TotalRatings  int           `json:"totalRatings"`
}
