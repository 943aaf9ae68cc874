package models

import "gorm.io/gorm"

type Medication struct {
	gorm.Model

	UserID    uint   `gorm:"not null;index"` // Foreign key to the owning patient
	Name      string `gorm:"not null"`
	Dosage    string `gorm:"not null"`
	Frequency string `gorm:"not null"` // "daily", "twice_daily", "weekly", "monthly", "as_needed"
	Time      string `gorm:"not null"` // Scheduled time of day, e.g. "08:00"

	// Relationships
	User           User            `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	MedicationLogs []MedicationLog `gorm:"foreignKey:MedicationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
