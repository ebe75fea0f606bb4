package model

import "time"

// BaseModel carries the generated key and creation time shared by every table.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
