package notification

import (
	"time"

	"github.com/slrtce/smartschedule/core/timetable"
)

// AdminUserID is the fixed identity audit notifications are recorded under.
const AdminUserID = "admin"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"` // UTC
	Read      bool      `json:"read"`
}

// MockEmail is the transient view model of one simulated email/SMS delivery.
// It is returned to the caller for display and never persisted.
type MockEmail struct {
	RecipientName   string           `json:"recipient_name"`
	RecipientEmail  string           `json:"recipient_email"`
	RecipientPhone  string           `json:"recipient_phone"`
	Subject         string           `json:"subject"`
	Message         string           `json:"message"`
	ScheduleContext *ScheduleContext `json:"schedule_context,omitempty"`
}

// ScheduleContext points at the specific lecture change that triggered a
// notification.
type ScheduleContext struct {
	Day     string            `json:"day"`
	Lecture timetable.Lecture `json:"lecture"`
}

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BulkEmailSummary summarizes a bulk dispatch for the administrator. The
// body preview is personalized for one representative recipient only; the
// other recipients get in-app notifications, not rendered emails.
type BulkEmailSummary struct {
	Recipients       []Recipient `json:"recipients"`
	Subject          string      `json:"subject"`
	EmailBodyPreview string      `json:"email_body_preview"`
}
