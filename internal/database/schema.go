package database

import (
	"gorm.io/datatypes"
)

type User struct {
	Id           string `gorm:"primaryKey;size:32"`
	Username     string `gorm:"uniqueIndex;size:80;not null"`
	Email        string `gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string `gorm:"size:128;not null"`
}

// ChatHistory holds one row per user: the full working history serialized
// as a JSON turn sequence, upserted in place on every save.
type ChatHistory struct {
	Id          uint           `gorm:"primaryKey"`
	UserId      string         `gorm:"uniqueIndex;size:32;not null"`
	History     datatypes.JSON `gorm:"not null"`
	LastUpdated int64
}
