package testutil

import (
	"testing"
	"time"

	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
)

func CreateTeacher(
	t *testing.T,
	repo teacher.Repository,
	id, name, email, phone, year, pwd string,
) teacher.Teacher {
	tstamp := time.Now().UTC()
	tchr := teacher.Teacher{
		ID:                 id,
		Name:               name,
		Email:              email,
		PhoneNumber:        phone,
		Department:         "Computer Engineering",
		YearSpecialization: year,
		Subjects:           []string{"Math"},
		CreatedAt:          tstamp,
		UpdatedAt:          tstamp,
	}
	if pwd != "" {
		if err := tchr.SetPassword(pwd); err != nil {
			t.Fatalf("createTeacher() failed: %v", err)
		}
	}
	tchr, err := repo.CreateTeacher(tchr)
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	return tchr
}

// SampleGenerateParams returns a valid parameter set matching the product's
// default form values.
func SampleGenerateParams() timetable.GenerateParams {
	return timetable.GenerateParams{
		Year:       timetable.YearFirst,
		Semester:   "Semester 1",
		Department: "Computer Engineering",
		Subjects: []timetable.Subject{
			{Name: "Math", DefaultTeacher: "A"},
			{Name: "Physics Lab", DefaultTeacher: "B"},
		},
		StartTime:       "09:00",
		LectureDuration: 50,
		LabDuration:     100,
		BreakDuration:   40,
		StartDate:       "2026-01-05",
		EndDate:         "2026-05-29",
	}
}

// SampleTimetable returns a persistable timetable with a single assigned
// lecture for the named teacher.
func SampleTimetable(id, year, teacherName string) timetable.Timetable {
	now := time.Now().UTC()
	return timetable.Timetable{
		ID:         id,
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
					{Time: "13:00 - 13:40", Subject: timetable.BreakSubject, Teacher: timetable.NotApplicable, Room: timetable.NotApplicable, IsBreak: true},
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
