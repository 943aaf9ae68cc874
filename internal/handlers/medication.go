package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/types"
	"github.com/medtrack-dev/medtrack/internal/utils"
	"gorm.io/gorm"
)

type MedicationRequest struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

type MedicationResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Time      string `json:"time"`
}

func medicationID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("medication_id"), 10, 64)

	if err != nil {
		return 0, errors.New("invalid medication ID")
	}

	return uint(id), nil
}

func ListMedications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var medications []models.Medication

	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&medications).Error; err != nil {
		log.Printf("Failed to fetch medications: %v", err)
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

func CreateMedication(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Only patient accounts own medications; caretakers are read-only.
	if currentUser.Role != types.RolePatient {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only patients can manage medications"})
		return
	}

	var req MedicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if !types.ValidFrequency(req.Frequency) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid frequency"})
		return
	}

	medication := models.Medication{
		UserID:    currentUser.ID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Time:      req.Time,
	}

	if err := db.DB.Create(&medication).Error; err != nil {
		log.Printf("Failed to create medication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medication"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Medication added successfully",
		"medication": MedicationResponse{
			ID:        medication.ID,
			Name:      medication.Name,
			Dosage:    medication.Dosage,
			Frequency: medication.Frequency,
			Time:      medication.Time,
		},
	})
}

func UpdateMedication(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RolePatient {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only patients can manage medications"})
		return
	}

	id, err := medicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req MedicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if !types.ValidFrequency(req.Frequency) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid frequency"})
		return
	}

	var medication models.Medication

	if err := db.DB.Where("id = ? AND user_id = ?", id, currentUser.ID).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		} else {
			log.Printf("Failed to fetch medication: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication"})
		}
		return
	}

	medication.Name = req.Name
	medication.Dosage = req.Dosage
	medication.Frequency = req.Frequency
	medication.Time = req.Time

	if err := db.DB.Save(&medication).Error; err != nil {
		log.Printf("Failed to update medication: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medication"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Medication updated successfully",
		"medication": MedicationResponse{
			ID:        medication.ID,
			Name:      medication.Name,
			Dosage:    medication.Dosage,
			Frequency: medication.Frequency,
			Time:      medication.Time,
		},
	})
}

func DeleteMedication(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if currentUser.Role != types.RolePatient {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only patients can manage medications"})
		return
	}

	id, err := medicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var medication models.Medication

	if err := db.DB.Where("id = ? AND user_id = ?", id, currentUser.ID).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		} else {
			log.Printf("Failed to fetch medication: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve medication"})
		}
		return
	}

	// Logs must not outlive their medication; both deletes run in one
	// transaction so a concurrent log attempt sees either both or neither.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("medication_id = ?", medication.ID).Delete(&models.MedicationLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&medication).Error
	})

	if err != nil {
		log.Printf("Failed to delete medication %d: %v", medication.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medication"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Medication deleted successfully"})
}
