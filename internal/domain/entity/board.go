package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board is the root of an aggregate. Its tasks are the rows of tasks whose BoardID points here.
type Board struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null"`
	OwnerID   string    `json:"ownerId" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func (b *Board) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
