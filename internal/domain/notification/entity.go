package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAttendanceCheckIn      NotificationType = "attendance_check_in"
	TypeAttendanceCheckOut     NotificationType = "attendance_check_out"
	TypeAttendanceUndo         NotificationType = "attendance_undo"
	TypeSaleRecorded           NotificationType = "sale_recorded"
	TypeAssignmentUpserted     NotificationType = "assignment_upserted"
	TypeAttendanceSettingsEdit NotificationType = "attendance_settings_edit"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeAttendanceCheckIn,
		TypeAttendanceCheckOut,
		TypeAttendanceUndo,
		TypeSaleRecorded,
		TypeAssignmentUpserted,
		TypeAttendanceSettingsEdit,
	}
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
