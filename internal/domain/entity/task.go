package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BoardID     string    `json:"boardId" gorm:"type:varchar(36);not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdDate"`
	UpdatedAt   time.Time `json:"updatedDate"`
}

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
