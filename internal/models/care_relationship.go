package models

import "gorm.io/gorm"

// CareRelationship links a caretaker account to a patient account and grants
// the caretaker read-only visibility into the patient's medications and logs.
type CareRelationship struct {
	gorm.Model

	CaretakerID uint `gorm:"not null;uniqueIndex:idx_caretaker_patient"`
	PatientID   uint `gorm:"not null;uniqueIndex:idx_caretaker_patient"`

	// Relationships
	Caretaker User `gorm:"foreignKey:CaretakerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
