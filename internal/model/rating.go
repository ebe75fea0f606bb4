package model

import "time"

// Rating bounds
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is one user's score for one store. (user_id, store_id) is unique.
type Rating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:1" json:"userId"`
	StoreID   int64     `gorm:"not null;uniqueIndex:idx_ratings_user_store,priority:2;index" json:"storeId"`
	Rating    int       `gorm:"not null;check:chk_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

// ValidRating reports whether v is inside the accepted score range.
func ValidRating(v int) bool {
	return v >= RatingMin && v <= RatingMax
}

// AllModels lists every table for AutoMigrate, parents first.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Store{}, &Rating{}}
}
