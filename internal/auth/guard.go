package auth

import (
	"errors"

	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/types"
	"gorm.io/gorm"
)

var (
	ErrNotCaretaker    = errors.New("caretaker role required")
	ErrNotLinked       = errors.New("no care relationship with this patient")
	ErrPatientNotFound = errors.New("patient not found")
)

// RequireCaretaker gates caretaker-only operations on the credential's role.
func RequireCaretaker(role string) error {
	if role != types.RoleCaretaker {
		return ErrNotCaretaker
	}
	return nil
}

// FindPatient resolves an account id to a patient account. Accounts with any
// other role are reported as not found.
func FindPatient(patientID uint) (models.User, error) {
	var patient models.User

	err := db.DB.Where("id = ? AND role = ?", patientID, types.RolePatient).First(&patient).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrPatientNotFound
		}
		return models.User{}, err
	}

	return patient, nil
}

// RequirePatientAccess allows a caretaker to read a patient's data only when
// a care relationship edge exists between the two accounts.
func RequirePatientAccess(caretakerID, patientID uint) error {
	var relationship models.CareRelationship

	err := db.DB.Where("caretaker_id = ? AND patient_id = ?", caretakerID, patientID).First(&relationship).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotLinked
		}
		return err
	}

	return nil
}
