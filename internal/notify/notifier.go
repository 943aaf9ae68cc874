// Package notify defines the boundary to the reminder delivery collaborator.
// The core never delivers anything itself; it hands reminders to a Notifier.
package notify

import (
	"context"
	"log"
)

// Reminder is the payload a delivery implementation would send.
type Reminder struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	Channel        string `json:"channel"`
	MedicationName string `json:"medication_name,omitempty"`
	ScheduledTime  string `json:"scheduled_time,omitempty"`
	Message        string `json:"message"`
}

type Notifier interface {
	SendReminder(ctx context.Context, reminder Reminder) error
}

// LogNotifier is the in-repo stand-in for a real delivery channel. It only
// writes the reminder to the operator log.
type LogNotifier struct{}

func (LogNotifier) SendReminder(_ context.Context, reminder Reminder) error {
	log.Printf("Reminder for user %d via %s: %s", reminder.UserID, reminder.Channel, reminder.Message)
	return nil
}
