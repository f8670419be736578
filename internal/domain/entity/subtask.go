package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subtask struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TaskID      string    `json:"taskId" gorm:"type:varchar(36);not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Completed   bool      `json:"isCompleted" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdDate"`
	UpdatedAt   time.Time `json:"updatedDate"`
}

func (s *Subtask) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
