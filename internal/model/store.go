package model

// Store is a rateable shop. OwnerID, when set, points at a user with role store.
type Store struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:255;not null;uniqueIndex:idx_stores_email_lower,expression:LOWER(email)" json:"email"`
	Address string `gorm:"size:400;not null" json:"address"`
	OwnerID *int64 `gorm:"index" json:"ownerId"`

	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreWithRating is a store with its rating aggregates computed at query time.
// UserRating is only filled when the list was requested on behalf of a rater.
type StoreWithRating struct {
	Store         `gorm:"embedded"`
	AverageRating float64
	TotalRatings  int64
	UserRating    *int
}
