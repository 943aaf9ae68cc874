package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/adherence"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/timeutil"
	"github.com/medtrack-dev/medtrack/internal/utils"
)

// adherenceWindowDays is the trailing window used for the adherence rate.
const adherenceWindowDays = 30

type AdherenceSummary struct {
	AdherenceRate   int `json:"adherence_rate"`
	CurrentStreak   int `json:"current_streak"`
	MedicationCount int `json:"medication_count"`
	WindowDays      int `json:"window_days"`
}

// GetAdherence reports the caller's own adherence rate and streak.
func GetAdherence(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	summary, err := adherenceSummary(userID)

	if err != nil {
		log.Printf("Failed to compute adherence for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute adherence"})
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// adherenceSummary feeds the owner's ledger into the adherence engine.
func adherenceSummary(ownerID uint) (AdherenceSummary, error) {
	var medicationCount int64

	if err := db.DB.Model(&models.Medication{}).Where("user_id = ?", ownerID).Count(&medicationCount).Error; err != nil {
		return AdherenceSummary{}, err
	}

	var logs []models.MedicationLog

	if err := db.DB.Where("user_id = ?", ownerID).Find(&logs).Error; err != nil {
		return AdherenceSummary{}, err
	}

	takenAt := make([]time.Time, 0, len(logs))

	for _, intakeLog := range logs {
		takenAt = append(takenAt, intakeLog.TakenAt)
	}

	now := time.Now()
	loc := timeutil.Location()

	return AdherenceSummary{
		AdherenceRate:   adherence.AdherenceRate(takenAt, int(medicationCount), adherenceWindowDays, now, loc),
		CurrentStreak:   adherence.CurrentStreak(takenAt, int(medicationCount), now, loc),
		MedicationCount: int(medicationCount),
		WindowDays:      adherenceWindowDays,
	}, nil
}
