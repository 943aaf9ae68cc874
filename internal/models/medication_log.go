package models

import (
	"time"

	"gorm.io/gorm"
)

// MedicationLog records a single intake of a medication. TakenOn holds the
// calendar date (in the configured zone) the intake counts for; the unique
// index on (medication_id, taken_on) makes the one-log-per-day rule hold even
// for concurrent inserts.
type MedicationLog struct {
	gorm.Model

	MedicationID uint      `gorm:"not null;uniqueIndex:idx_medication_day"`
	UserID       uint      `gorm:"not null;index"` // Denormalized owner for authorization checks without a join
	TakenAt      time.Time `gorm:"not null"`
	TakenOn      string    `gorm:"not null;uniqueIndex:idx_medication_day"` // "2006-01-02"
	ProofImage   string    // Reference to an externally stored image, never binary content

	// Relationships
	Medication Medication `gorm:"foreignKey:MedicationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
