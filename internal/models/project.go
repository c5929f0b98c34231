package models

import "time"

// DefaultName is assigned when a project or task is created with a blank name.
const DefaultName = "<default_name>"

type Project struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	OwnerID   uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner      User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	OtherUsers []User `gorm:"many2many:project_users" json:"other_users,omitempty"`
	Tasks      []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
