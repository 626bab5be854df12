package domain

import "time"

// Job represents a task assigned to a user with a due date.
type Job struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	// Assignee references User.ID and must belong to an existing user.
	Assignee int64     `gorm:"index;not null"`
	DueDate  time.Time `gorm:"index;not null"`
}
