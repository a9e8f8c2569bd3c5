package dto

import "github.com/noah-isme/smartedu-api/internal/models"

// CreateNotificationRequest is the POST /notifications payload. Without a
// user_id the notification goes to every active user, narrowed by role when set.
type CreateNotificationRequest struct {
	UserID  *int64                  `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	Role    *models.UserRole        `json:"role,omitempty" validate:"omitempty,oneof=admin HOD faculty student"`
	Title   string                  `json:"title" validate:"required,max=200"`
	Message string                  `json:"message" validate:"required"`
	Type    models.NotificationType `json:"type" validate:"omitempty,oneof=info success warning error"`
}

// UnreadCountResponse answers GET /notifications/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// CreateNotificationResponse reports how many users were notified.
type CreateNotificationResponse struct {
	Created int `json:"created"`
}
