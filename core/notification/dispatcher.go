package notification

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
)

const mockEmailSubject = "Schedule Update Notification"

type DispatchStatus string

const (
	StatusDispatched DispatchStatus = "dispatched"
	StatusSkipped    DispatchStatus = "skipped"
)

// DispatchResult reports the outcome of a single dispatch. A skipped
// dispatch is not an error; it carries the reason instead of a payload.
type DispatchResult struct {
	Status DispatchStatus `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Email  *MockEmail     `json:"email,omitempty"`
}

type BulkDispatchResult struct {
	NotifiedCount int               `json:"notified_count"`
	Summary       *BulkEmailSummary `json:"summary,omitempty"`
}

// Dispatcher records persistent notifications and simulates email/SMS
// delivery. Dispatch is fire-and-forget, at most once: no queueing, no
// retries, no delivery confirmation.
type Dispatcher struct {
	svc     *Service
	mailSvc core.EmailService
	log     core.Logger
}

func NewDispatcher(svc *Service, mailSvc core.EmailService, log core.Logger) *Dispatcher {
	return &Dispatcher{svc: svc, mailSvc: mailSvc, log: log}
}

// Notify records a notification for the teacher plus an audit entry for the
// administrator, and produces the simulated email. Teachers without full
// contact info are skipped.
func (d *Dispatcher) Notify(t teacher.Teacher, message string, sctx *ScheduleContext) (DispatchResult, error) {
	if !t.HasContactInfo() {
		d.log.Warn(fmt.Sprintf("notification to %s dropped: missing contact info", t.Name))
		return DispatchResult{Status: StatusSkipped, Reason: "missing contact info"}, nil
	}

	if _, err := d.svc.Add(t.ID, message); err != nil {
		return DispatchResult{}, err
	}
	d.svc.NotifyAdmin(fmt.Sprintf("You updated the schedule for %q. A notification has been sent.", t.Name))

	email := &MockEmail{
		RecipientName:   t.Name,
		RecipientEmail:  t.Email,
		RecipientPhone:  t.PhoneNumber,
		Subject:         mockEmailSubject,
		Message:         message,
		ScheduleContext: sctx,
	}
	d.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: t.Name, Address: t.Email}},
		Subject: mockEmailSubject,
		BodyStr: singleEmailBody(message, sctx),
	})
	d.log.Info(fmt.Sprintf("notification sent to %s | email: %s | phone: %s", t.Name, t.Email, t.PhoneNumber))

	return DispatchResult{Status: StatusDispatched, Email: email}, nil
}

// NotifyBulk informs every teacher whose year specialization matches the
// timetable's year. Matching is exact; no normalization. Each match gets an
// in-app notification only; the administrator gets a summary with a body
// preview personalized for the first match.
func (d *Dispatcher) NotifyBulk(tt timetable.Timetable, allTeachers []teacher.Teacher) (BulkDispatchResult, error) {
	var relevant []teacher.Teacher
	for _, t := range allTeachers {
		if t.YearSpecialization == tt.Year {
			relevant = append(relevant, t)
		}
	}

	if len(relevant) == 0 {
		d.svc.NotifyAdmin(fmt.Sprintf(
			"You generated a new schedule for %s (%s), but no teachers with that year specialization were found to notify.",
			tt.Department, tt.Year))
		return BulkDispatchResult{}, nil
	}

	inAppMessage := fmt.Sprintf(
		"A new timetable for %s (%s) has been generated. Please check your dashboard for your assignments.",
		tt.Department, tt.Year)
	subject := fmt.Sprintf("New Timetable Generated: %s - %s", tt.Department, tt.Year)

	recipients := make([]Recipient, 0, len(relevant))
	for _, t := range relevant {
		if _, err := d.svc.Add(t.ID, inAppMessage); err != nil {
			return BulkDispatchResult{}, err
		}
		recipients = append(recipients, Recipient{Name: t.Name, Email: t.Email})
		d.log.Info(fmt.Sprintf("bulk notification queued for %s (%s) for the %s schedule", t.Name, t.Email, tt.Year))
	}

	d.svc.NotifyAdmin(fmt.Sprintf(
		"You generated a new schedule for %s (%s) and notified %d relevant teachers.",
		tt.Department, tt.Year, len(relevant)))

	summary := &BulkEmailSummary{
		Recipients:       recipients,
		Subject:          subject,
		EmailBodyPreview: bulkEmailPreview(relevant[0], tt),
	}
	// surface the summary in the administrator's (simulated) mailbox too
	d.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: "Admin", Address: core.Conf.GetString("adminEmail")}},
		Subject: subject,
		BodyStr: summary.EmailBodyPreview,
	})

	return BulkDispatchResult{NotifiedCount: len(relevant), Summary: summary}, nil
}

// FormatTeacherSchedule renders the teacher's slice of a timetable as a
// readable block, skipping breaks and days without assignments.
func FormatTeacherSchedule(teacherName string, tt timetable.Timetable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your schedule for %s - %s (%s to %s):\n\n", tt.Department, tt.Year, tt.StartDate, tt.EndDate)

	var assigned bool
	for _, day := range tt.Schedule {
		var lectures []timetable.Lecture
		for _, l := range day.Lectures {
			if l.Teacher == teacherName && !l.IsBreak {
				lectures = append(lectures, l)
			}
		}
		if len(lectures) == 0 {
			continue
		}
		assigned = true
		fmt.Fprintf(&b, "--- %s ---\n", day.Day)
		for _, l := range lectures {
			room := l.Room
			if room == "" {
				room = timetable.NotApplicable
			}
			fmt.Fprintf(&b, "  %s: %s (Room: %s)\n", l.Time, l.Subject, room)
		}
		b.WriteString("\n")
	}

	if !assigned {
		return "You have no lectures assigned in this timetable."
	}
	return strings.TrimSpace(b.String())
}

func singleEmailBody(message string, sctx *ScheduleContext) string {
	if sctx == nil {
		return message
	}
	return fmt.Sprintf("%s\n\nChanged slot (%s): %s %s (Room: %s)",
		message, sctx.Day, sctx.Lecture.Time, sctx.Lecture.Subject, sctx.Lecture.Room)
}

func bulkEmailPreview(first teacher.Teacher, tt timetable.Timetable) string {
	appName := core.Conf.GetString("appName")
	return fmt.Sprintf(`(This is a preview of the email sent to each teacher. This example is for %s.)

Hello %s,

A new timetable has been generated for %s - %s. Your personalized schedule is detailed below.

--------------------------------------
%s
--------------------------------------

You can also view this on your %s dashboard at any time.

Regards,
%s`,
		first.Name, first.Name, tt.Department, tt.Year,
		FormatTeacherSchedule(first.Name, tt), appName, appName)
}
