package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/medtrack-dev/medtrack/internal/middleware"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/utils"
	"gorm.io/gorm"
)

type AddPatientRequest struct {
	PatientID uint `json:"patient_id" binding:"required"`
}

type PatientSummary struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	AddedAt  time.Time `json:"added_at"`
}

// requireCaretakerAccess resolves the current user and the patient_id param,
// then enforces the caretaker rules: caretaker role, existing care edge.
func requireCaretakerAccess(ctx *gin.Context) (middleware.AuthenticatedUser, uint, bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return middleware.AuthenticatedUser{}, 0, false
	}

	if err := auth.RequireCaretaker(currentUser.Role); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only caretakers can view patient data"})
		return middleware.AuthenticatedUser{}, 0, false
	}

	patientID, err := strconv.ParseUint(ctx.Param("patient_id"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID"})
		return middleware.AuthenticatedUser{}, 0, false
	}

	if err := auth.RequirePatientAccess(currentUser.ID, uint(patientID)); err != nil {
		if errors.Is(err, auth.ErrNotLinked) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized to view this patient's data"})
		} else {
			log.Printf("Failed to check care relationship: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return middleware.AuthenticatedUser{}, 0, false
	}

	return currentUser, uint(patientID), true
}

func AddPatient(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := auth.RequireCaretaker(currentUser.Role); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only caretakers can add patients"})
		return
	}

	var req AddPatientRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Patient ID is required"})
		return
	}

	patient, err := auth.FindPatient(req.PatientID)

	if err != nil {
		if errors.Is(err, auth.ErrPatientNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		} else {
			log.Printf("Failed to fetch patient: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.CareRelationship

	err = db.DB.Where("caretaker_id = ? AND patient_id = ?", currentUser.ID, patient.ID).First(&existing).Error

	if err == nil {
		// Explicit conflict rather than silent success, so the caller can
		// tell "already set up" from "just created".
		ctx.JSON(http.StatusConflict, gin.H{"error": "Patient already added"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check care relationship: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	relationship := models.CareRelationship{
		CaretakerID: currentUser.ID,
		PatientID:   patient.ID,
	}

	if err := db.DB.Create(&relationship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Patient already added"})
			return
		}
		log.Printf("Failed to create care relationship: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add patient"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Patient added successfully"})
}

func ListPatients(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := auth.RequireCaretaker(currentUser.Role); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only caretakers can view patients"})
		return
	}

	patients := make([]PatientSummary, 0)

	err = db.DB.Model(&models.CareRelationship{}).
		Select("users.id, users.username, users.email, care_relationships.created_at AS added_at").
		Joins("JOIN users ON users.id = care_relationships.patient_id").
		Where("care_relationships.caretaker_id = ?", currentUser.ID).
		Scan(&patients).Error

	if err != nil {
		log.Printf("Failed to fetch patients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve patients"})
		return
	}

	ctx.JSON(http.StatusOK, patients)
}

func GetPatientMedications(ctx *gin.Context) {
	_, patientID, ok := requireCaretakerAccess(ctx)

	if !ok {
		return
	}

	var medications []models.Medication

	if err := db.DB.Where("user_id = ?", patientID).Order("created_at DESC").Find(&medications).Error; err != nil {
		log.Printf("Failed to fetch patient medications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medications"})
		return
	}

	response := make([]MedicationResponse, 0, len(medications))

	for _, medication := range medications {
		response = append(response, MedicationResponse{
			ID:        medication.ID,
			Name:      medication.Name,
			Dosage:    medication.Dosage,
			Frequency: medication.Frequency,
			Time:      medication.Time,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetPatientLogs(ctx *gin.Context) {
	_, patientID, ok := requireCaretakerAccess(ctx)

	if !ok {
		return
	}

	logs, err := queryIntakeLogs(patientID, ctx.Query("start_date"), ctx.Query("end_date"))

	if err != nil {
		log.Printf("Failed to fetch patient logs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication logs"})
		return
	}

	ctx.JSON(http.StatusOK, logs)
}

func GetPatientAdherence(ctx *gin.Context) {
	_, patientID, ok := requireCaretakerAccess(ctx)

	if !ok {
		return
	}

	summary, err := adherenceSummary(patientID)

	if err != nil {
		log.Printf("Failed to compute adherence for patient %d: %v", patientID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute adherence"})
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
