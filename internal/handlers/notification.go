package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/db"
	"github.com/medtrack-dev/medtrack/internal/models"
	"github.com/medtrack-dev/medtrack/internal/notify"
	"github.com/medtrack-dev/medtrack/internal/types"
	"github.com/medtrack-dev/medtrack/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Reminders is the delivery collaborator. The default only logs; a real
// deployment swaps in an implementation that actually sends.
var Reminders notify.Notifier = notify.LogNotifier{}

type NotificationRuleRequest struct {
	Channel  string                 `json:"channel" binding:"required"`
	IsActive bool                   `json:"is_active"`
	Config   map[string]interface{} `json:"config"`
}

type NotificationRuleResponse struct {
	Channel  string                 `json:"channel"`
	IsActive bool                   `json:"is_active"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

func ListNotificationSettings(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var rules []models.NotificationRule

	if err := db.DB.Where("user_id = ?", userID).Find(&rules).Error; err != nil {
		log.Printf("Failed to fetch notification rules: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification settings"})
		return
	}

	response := make([]NotificationRuleResponse, 0, len(rules))

	for _, rule := range rules {
		item := NotificationRuleResponse{
			Channel:  rule.Channel,
			IsActive: rule.IsActive,
		}
		if len(rule.Config) > 0 {
			if err := json.Unmarshal(rule.Config, &item.Config); err != nil {
				log.Printf("Invalid stored config for rule %d: %v", rule.ID, err)
			}
		}
		response = append(response, item)
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateNotificationSettings(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req NotificationRuleRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidChannel(req.Channel) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid channel"})
		return
	}

	var config datatypes.JSON

	if req.Config != nil {
		raw, err := json.Marshal(req.Config)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid config format"})
			return
		}
		config = raw
	}

	rule := models.NotificationRule{
		UserID:   userID,
		Channel:  req.Channel,
		IsActive: req.IsActive,
		Config:   config,
	}

	err = db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "config", "updated_at"}),
	}).Create(&rule).Error

	if err != nil {
		log.Printf("Failed to upsert notification rule: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification settings"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification settings updated successfully"})
}

// TestNotification pushes a test reminder through every active rule so users
// can confirm their settings without waiting for a scheduled reminder.
func TestNotification(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var rules []models.NotificationRule

	if err := db.DB.Where("user_id = ? AND is_active = ?", currentUser.ID, true).Find(&rules).Error; err != nil {
		log.Printf("Failed to fetch notification rules: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notification settings"})
		return
	}

	if len(rules) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No active notification channels"})
		return
	}

	sent := 0

	for _, rule := range rules {
		reminder := notify.Reminder{
			UserID:   currentUser.ID,
			Username: currentUser.Username,
			Channel:  rule.Channel,
			Message:  "This is a test reminder from MedTrack",
		}

		if err := Reminders.SendReminder(ctx.Request.Context(), reminder); err != nil {
			log.Printf("Failed to send test reminder via %s: %v", rule.Channel, err)
			continue
		}
		sent++
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Test reminder sent", "channels": sent})
}
