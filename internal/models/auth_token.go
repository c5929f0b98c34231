package models

import "time"

// AuthToken is the opaque bearer credential for a user. UserID carries a
// unique index so a user can never hold more than one live token; issuing
// returns the existing row instead of inserting a second one.
type AuthToken struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	Key       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
