package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Medication struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PatientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient   *Patient       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Name      string         `gorm:"not null;column:name" json:"name"`
	Dosage    string         `gorm:"column:dosage" json:"dosage"`
	Schedule  string         `gorm:"column:schedule" json:"schedule"`
	Notes     string         `gorm:"column:notes;type:text" json:"notes"`
	Active    bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Medication) TableName() string { return "medication" }
