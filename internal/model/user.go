package model

// User is a platform account. Password holds the bcrypt digest and is never serialized.
// Email keeps its submitted case; uniqueness is on LOWER(email).
type User struct {
	BaseModel
	Name     string `gorm:"size:60;not null" json:"name"`
	Email    string `gorm:"size:255;not null;uniqueIndex:idx_users_email_lower,expression:LOWER(email)" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Address  string `gorm:"size:400" json:"address"`
	Role     Role   `gorm:"size:20;not null;default:'user';index" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// UserWithStore is a user joined with the first store it owns, if any.
type UserWithStore struct {
	User
	Store *Store
}
