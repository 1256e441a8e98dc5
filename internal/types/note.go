package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Note is one behavioral record for a patient on a given calendar day.
// At most one note exists per (patient, day); the unique index enforces it.
type Note struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PatientID     uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_note_patient_day" json:"patient_id"`
	Patient       *Patient       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Date          time.Time      `gorm:"not null;column:date;uniqueIndex:idx_note_patient_day" json:"date"`
	SleepTime     *string        `gorm:"column:sleep_time" json:"sleep_time,omitempty"`
	WakeTime      *string        `gorm:"column:wake_time" json:"wake_time,omitempty"`
	Mood          *int           `gorm:"column:mood" json:"mood,omitempty"`
	Detail        string         `gorm:"column:detail;type:text" json:"detail"`
	Tags          datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	HourlyEntries []HourlyEntry  `gorm:"constraint:OnDelete:CASCADE;foreignKey:NoteID;references:ID" json:"hourly_entries"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Note) TableName() string { return "note" }

func (n *Note) TagList() []string {
	if len(n.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(n.Tags, &tags); err != nil {
		return nil
	}
	return tags
}

func (n *Note) SetTags(tags []string) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	n.Tags = datatypes.JSON(raw)
	return nil
}

type HourlyEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NoteID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"note_id"`
	Time        string         `gorm:"not null;column:time" json:"time"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Position    int            `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (HourlyEntry) TableName() string { return "hourly_entry" }
