package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FirstName     string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName      string         `gorm:"column:last_name" json:"last_name"`
	DateOfBirth   *time.Time     `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Diagnosis     string         `gorm:"column:diagnosis" json:"diagnosis"`
	AvatarColor   string         `gorm:"column:avatar_color" json:"avatar_color"`
	AvatarDataURL string         `gorm:"column:avatar_data_url;type:text" json:"avatar_data_url"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Patient) TableName() string { return "patient" }

func (p *Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
