package models

import "time"

type TaskStatus string

const (
	TaskStatusNotAssigned TaskStatus = "NOT_ASSIGNED"
	TaskStatusInProgress  TaskStatus = "IN_PROGRESS"
	TaskStatusClosed      TaskStatus = "CLOSED"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotAssigned, TaskStatusInProgress, TaskStatusClosed:
		return true
	}
	return false
}

// Estimation is the effort-point value of a task, restricted to the
// 1,2,3,5,8,13,21 scale.
type Estimation int16

// Valid reports whether the estimation is on the allowed point scale.
func (e Estimation) Valid() bool {
	switch e {
	case 1, 2, 3, 5, 8, 13, 21:
		return true
	}
	return false
}

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	ProjectID    uint64     `gorm:"not null;index" json:"project_id"`
	CreatedByID  uint64     `gorm:"not null;index" json:"created_by"`
	AssignedToID *uint64    `json:"assigned_to"`
	Name         string     `gorm:"type:varchar(128);not null" json:"name"`
	Estimation   Estimation `gorm:"type:smallint;not null" json:"estimation"`
	Status       TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedBy  User    `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID" json:"-"`
}
