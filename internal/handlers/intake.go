package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/timeutil"
	"github.com/medtrack-dev/medtrack/internal/utils"
	"gorm.io/gorm"
)

type LogIntakeRequest struct {
	ProofImage string `json:"proof_image"`
}

type IntakeLogResponse struct {
	ID           uint      `json:"id"`
	MedicationID uint      `json:"medication_id"`
	TakenAt      time.Time `json:"taken_at"`
	TakenOn      string    `json:"taken_on"`
	ProofImage   string    `json:"proof_image,omitempty"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Time         string    `json:"time"`
}

// LogIntake appends an intake event for one of the caller's medications. A
// medication can be logged at most once per calendar day; the second attempt
// fails instead of overwriting.
func LogIntake(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := medicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req LogIntakeRequest

	// Body is optional; an empty body means no proof image.
	if ctx.Request.ContentLength > 0 {
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}

	// NotFound rather than Forbidden for medications owned by someone else,
	// so the response does not confirm that the id exists.
	var medication models.Medication

	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		} else {
			log.Printf("Failed to fetch medication: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication"})
		}
		return
	}

	now := time.Now()
	today := timeutil.DateOf(now)

	var existingLog models.MedicationLog

	err = db.DB.Where("medication_id = ? AND taken_on = ?", medication.ID, today).First(&existingLog).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Medication already logged for today"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing log: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log medication"})
		return
	}

	intakeLog := models.MedicationLog{
		MedicationID: medication.ID,
		UserID:       userID,
		TakenAt:      now,
		TakenOn:      today,
		ProofImage:   req.ProofImage,
	}

	if err := db.DB.Create(&intakeLog).Error; err != nil {
		// The unique index on (medication_id, taken_on) closes the race
		// between two concurrent logs for the same day.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Medication already logged for today"})
			return
		}
		log.Printf("Failed to create medication log: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log medication"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Medication logged successfully",
		"log": IntakeLogResponse{
			ID:           intakeLog.ID,
			MedicationID: intakeLog.MedicationID,
			TakenAt:      intakeLog.TakenAt,
			TakenOn:      intakeLog.TakenOn,
			ProofImage:   intakeLog.ProofImage,
			Name:         medication.Name,
			Dosage:       medication.Dosage,
			Time:         medication.Time,
		},
	})
}

func ListIntakeLogs(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	logs, err := queryIntakeLogs(userID, ctx.Query("start_date"), ctx.Query("end_date"))

	if err != nil {
		log.Printf("Failed to fetch medication logs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication logs"})
		return
	}

	ctx.JSON(http.StatusOK, logs)
}

// queryIntakeLogs returns an owner's intake history joined with the current
// medication name/dosage/time, newest first. The join happens at read time so
// edited medications never leave stale copies in the ledger. Date filters are
// inclusive and apply to the event's calendar day.
func queryIntakeLogs(ownerID uint, startDate, endDate string) ([]IntakeLogResponse, error) {
	query := db.DB.Model(&models.MedicationLog{}).
		Select("medication_logs.id, medication_logs.medication_id, medication_logs.taken_at, medication_logs.taken_on, medication_logs.proof_image, medications.name, medications.dosage, medications.time").
		Joins("JOIN medications ON medications.id = medication_logs.medication_id").
		Where("medication_logs.user_id = ?", ownerID)

	if startDate != "" {
		query = query.Where("medication_logs.taken_on >= ?", startDate)
	}

	if endDate != "" {
		query = query.Where("medication_logs.taken_on <= ?", endDate)
	}

	logs := make([]IntakeLogResponse, 0)

	if err := query.Order("medication_logs.taken_at DESC").Scan(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}
