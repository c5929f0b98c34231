package models

import "time"

type Profession string

const (
	ProfessionFrontend Profession = "FRONTEND"
	ProfessionBackend  Profession = "BACKEND"
	ProfessionDevOps   Profession = "DEVOPS"
	ProfessionUXUI     Profession = "UX/UI"
)

// Valid reports whether the profession is one of the known values.
func (p Profession) Valid() bool {
	switch p {
	case ProfessionFrontend, ProfessionBackend, ProfessionDevOps, ProfessionUXUI:
		return true
	}
	return false
}

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(128)" json:"name"`
	Profession   Profession `gorm:"type:varchar(20);not null" json:"profession"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	OwnedProjects []Project `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedTasks  []Task    `gorm:"foreignKey:CreatedByID" json:"-"`
}
