package models

import (
	"fmt"
	"time"
)

// NotificationKind identifies the condition that raised a notification.
type NotificationKind string

const (
	NotificationLowBalance   NotificationKind = "low_balance"
	NotificationUpcomingBill NotificationKind = "upcoming_bill"
	NotificationGoalReached  NotificationKind = "goal_reached"
)

// NotificationEvent is one qualifying condition found by an evaluation.
// Key is stable for as long as the same condition holds.
type NotificationEvent struct {
	Kind          NotificationKind `json:"kind"`
	Key           string           `json:"key"`
	Message       string           `json:"message"`
	TransactionID int              `json:"transaction_id,omitempty"`
}

// ConditionKey builds the identity used to track a condition across evaluations.
func ConditionKey(kind NotificationKind, transactionID int) string {
	if transactionID == 0 {
		return string(kind)
	}
	return fmt.Sprintf("%s:%d", kind, transactionID)
}

// Notification is an entry of the notification log.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
