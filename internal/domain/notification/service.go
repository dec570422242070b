package notification

import (
	"context"
)

// Service is the outbound notification dispatcher. QueueNotification is
// fire-and-forget from the caller's point of view; delivery happens on
// background workers and an error never rolls back the primary operation.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())
	Stop()
}
