package notification

import (
	"strings"
	"testing"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
)

type fakeMailService struct {
	sent []*core.EmailMessage
}

func (svc *fakeMailService) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

func newTestDispatcher() (*Dispatcher, *fakeRepository, *fakeMailService) {
	repo := newFakeRepository()
	mailSvc := new(fakeMailService)
	svc := NewService(repo, nopLogger{})
	return NewDispatcher(svc, mailSvc, nopLogger{}), repo, mailSvc
}

func sampleTeacher(id, name, year string) teacher.Teacher {
	return teacher.Teacher{
		ID:                 id,
		Name:               name,
		Email:              strings.ToLower(name) + "@slrtce.in",
		PhoneNumber:        "9876543210",
		Department:         "Computer Engineering",
		YearSpecialization: year,
	}
}

func sampleTimetable(year string, teacherName string) timetable.Timetable {
	return timetable.Timetable{
		ID:         "tt1",
		Year:       year,
		Semester:   "Semester 1",
		Department: "Computer Engineering",
		StartDate:  "2026-01-05",
		EndDate:    "2026-05-29",
		Schedule: timetable.Schedule{
			{
				Day: "Monday",
				Lectures: []timetable.Lecture{
					{Time: "09:00 - 09:50", Subject: "Math", Teacher: teacherName, Room: "Room 101"},
					{Time: "12:20 - 13:00", Subject: timetable.BreakSubject, Teacher: timetable.NotApplicable, Room: timetable.NotApplicable, IsBreak: true},
				},
			},
		},
	}
}

func TestDispatcher_Notify(t *testing.T) {
	dispatcher, repo, mailSvc := newTestDispatcher()

	tchr := sampleTeacher("t1", "Anita", timetable.YearFirst)
	res, err := dispatcher.Notify(tchr, "Your Monday slot moved.", nil)
	if err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if res.Status != StatusDispatched {
		t.Fatalf("Notify() status = %s, want %s", res.Status, StatusDispatched)
	}
	if res.Email == nil || res.Email.RecipientEmail != tchr.Email || res.Email.Subject != "Schedule Update Notification" {
		t.Errorf("unexpected mock email: %+v", res.Email)
	}

	teacherNotifs, _ := repo.QueryNotificationsByUser("t1")
	if len(teacherNotifs) != 1 {
		t.Errorf("teacher notifications = %d, want 1", len(teacherNotifs))
	}
	adminNotifs, _ := repo.QueryNotificationsByUser(AdminUserID)
	if len(adminNotifs) != 1 {
		t.Errorf("admin notifications = %d, want 1", len(adminNotifs))
	}
	if len(mailSvc.sent) != 1 {
		t.Errorf("emails sent = %d, want 1", len(mailSvc.sent))
	}
}

func TestDispatcher_Notify_missingContactInfo(t *testing.T) {
	dispatcher, repo, mailSvc := newTestDispatcher()

	tchr := sampleTeacher("t1", "Anita", timetable.YearFirst)
	tchr.PhoneNumber = ""

	res, err := dispatcher.Notify(tchr, "Your Monday slot moved.", nil)
	if err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if res.Status != StatusSkipped || res.Reason != "missing contact info" {
		t.Errorf("Notify() result = %+v, want skipped for missing contact info", res)
	}
	if res.Email != nil {
		t.Error("Notify() produced an email payload for a skipped dispatch")
	}

	teacherNotifs, _ := repo.QueryNotificationsByUser("t1")
	adminNotifs, _ := repo.QueryNotificationsByUser(AdminUserID)
	if len(teacherNotifs) != 0 || len(adminNotifs) != 0 {
		t.Errorf("skipped dispatch persisted notifications: teacher=%d admin=%d", len(teacherNotifs), len(adminNotifs))
	}
	if len(mailSvc.sent) != 0 {
		t.Errorf("skipped dispatch sent %d emails", len(mailSvc.sent))
	}
}

func TestDispatcher_Notify_distinctEntries(t *testing.T) {
	dispatcher, repo, _ := newTestDispatcher()

	tchr := sampleTeacher("t1", "Anita", timetable.YearFirst)
	if _, err := dispatcher.Notify(tchr, "same message", nil); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if _, err := dispatcher.Notify(tchr, "same message", nil); err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}

	ns, _ := repo.QueryNotificationsByUser("t1")
	if len(ns) != 2 {
		t.Fatalf("notifications = %d, want 2 (no dedup)", len(ns))
	}
	if ns[0].ID == ns[1].ID {
		t.Error("repeated dispatches share a notification ID")
	}
}

func TestDispatcher_NotifyBulk(t *testing.T) {
	dispatcher, repo, mailSvc := newTestDispatcher()

	teachers := []teacher.Teacher{
		sampleTeacher("t1", "Anita", timetable.YearFirst),
		sampleTeacher("t2", "Bela", timetable.YearFirst),
		sampleTeacher("t3", "Chitra", timetable.YearFirst),
		sampleTeacher("t4", "Dinesh", timetable.YearSecond),
	}
	tt := sampleTimetable(timetable.YearFirst, "Anita")

	res, err := dispatcher.NotifyBulk(tt, teachers)
	if err != nil {
		t.Fatalf("NotifyBulk() failed: %v", err)
	}
	if res.NotifiedCount != 3 {
		t.Errorf("NotifiedCount = %d, want 3", res.NotifiedCount)
	}
	if res.Summary == nil || len(res.Summary.Recipients) != 3 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}

	for _, id := range []string{"t1", "t2", "t3"} {
		if ns, _ := repo.QueryNotificationsByUser(id); len(ns) != 1 {
			t.Errorf("teacher %s notifications = %d, want 1", id, len(ns))
		}
	}
	if ns, _ := repo.QueryNotificationsByUser("t4"); len(ns) != 0 {
		t.Errorf("non-matching teacher got %d notifications", len(ns))
	}
	if ns, _ := repo.QueryNotificationsByUser(AdminUserID); len(ns) != 1 {
		t.Errorf("admin notifications = %d, want 1", len(ns))
	}

	// the preview is personalized for the first match only
	if !strings.Contains(res.Summary.EmailBodyPreview, "This example is for Anita") {
		t.Errorf("preview not personalized for first match:\n%s", res.Summary.EmailBodyPreview)
	}
	if len(mailSvc.sent) != 1 {
		t.Errorf("summary emails sent = %d, want 1", len(mailSvc.sent))
	}
}

func TestDispatcher_NotifyBulk_noMatch(t *testing.T) {
	dispatcher, repo, mailSvc := newTestDispatcher()

	teachers := []teacher.Teacher{sampleTeacher("t1", "Anita", timetable.YearSecond)}
	tt := sampleTimetable(timetable.YearFirst, "Anita")

	res, err := dispatcher.NotifyBulk(tt, teachers)
	if err != nil {
		t.Fatalf("NotifyBulk() failed: %v", err)
	}
	if res.NotifiedCount != 0 || res.Summary != nil {
		t.Errorf("unexpected result for zero matches: %+v", res)
	}

	if ns, _ := repo.QueryNotificationsByUser(AdminUserID); len(ns) != 1 {
		t.Errorf("admin notifications = %d, want exactly 1", len(ns))
	}
	if ns, _ := repo.QueryNotificationsByUser("t1"); len(ns) != 0 {
		t.Errorf("non-matching teacher got %d notifications", len(ns))
	}
	if len(mailSvc.sent) != 0 {
		t.Errorf("zero-match bulk sent %d emails", len(mailSvc.sent))
	}
}

func TestFormatTeacherSchedule(t *testing.T) {
	tt := sampleTimetable(timetable.YearFirst, "Anita")

	got := FormatTeacherSchedule("Anita", tt)
	if !strings.Contains(got, "Your schedule for Computer Engineering - First Year (2026-01-05 to 2026-05-29):") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "--- Monday ---") {
		t.Errorf("missing day block:\n%s", got)
	}
	if !strings.Contains(got, "  09:00 - 09:50: Math (Room: Room 101)") {
		t.Errorf("missing lecture line:\n%s", got)
	}
	if strings.Contains(got, timetable.BreakSubject) {
		t.Errorf("break slot leaked into the schedule:\n%s", got)
	}

	if got := FormatTeacherSchedule("Nobody", tt); got != "You have no lectures assigned in this timetable." {
		t.Errorf("unexpected empty-schedule sentence: %q", got)
	}
}
