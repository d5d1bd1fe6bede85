package timetable

import (
	"strings"
	"time"

	"github.com/slrtce/smartschedule/core"
)

// Class year labels
const (
	YearFirst  = "First Year"
	YearSecond = "Second Year"
	YearThird  = "Third Year"
	YearFourth = "Fourth Year"
)

var (
	Years = []string{YearFirst, YearSecond, YearThird, YearFourth}

	yearNumbers = map[string]int{
		YearFirst:  1,
		YearSecond: 2,
		YearThird:  3,
		YearFourth: 4,
	}

	// Weekdays covered by a generated schedule, in order.
	Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
)

// Sentinel values for non-teaching slots and unassigned lectures.
const (
	BreakSubject      = "Lunch Break"
	NotApplicable     = "N/A"
	UnassignedTeacher = "[Unassigned]"
)

type Subject struct {
	Name           string `json:"name" validate:"required"`
	DefaultTeacher string `json:"default_teacher" validate:"required"`
}

// IsLab reports whether the subject is a lab, by naming convention.
func (s Subject) IsLab() bool {
	return strings.Contains(strings.ToLower(s.Name), "lab")
}

// Lecture is one scheduled slot within a day. Break slots carry sentinel
// subject/teacher/room values and IsBreak set.
type Lecture struct {
	Time    string `json:"time"` // "HH:MM - HH:MM"
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
	IsBreak bool   `json:"is_break,omitempty"`
}

// DaySchedule holds a weekday's lectures in chronological order.
type DaySchedule struct {
	Day      string    `json:"day"`
	Lectures []Lecture `json:"lectures"`
}

type Schedule []DaySchedule

type Timetable struct {
	ID         string    `json:"id"`
	Year       string    `json:"year"`
	Semester   string    `json:"semester"`
	Department string    `json:"department"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Schedule   Schedule  `json:"schedule"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// GenerateParams contains the inputs of a generation run.
// EndTime, Teachers, StartDate, EndDate and Semester do not take part in
// slot computation; they are carried through to the resulting Timetable.
type GenerateParams struct {
	Year            string    `json:"year" validate:"required,yearlabel"`
	Semester        string    `json:"semester" validate:"required"`
	Department      string    `json:"department" validate:"required"`
	Subjects        []Subject `json:"subjects" validate:"required,min=1,dive"`
	Teachers        []string  `json:"teachers"`
	StartTime       string    `json:"start_time" validate:"required,hhmm"`
	EndTime         string    `json:"end_time" validate:"omitempty,hhmm"`
	LectureDuration int       `json:"lecture_duration" validate:"required,min=1"`
	LabDuration     int       `json:"lab_duration" validate:"required,min=1"`
	BreakDuration   int       `json:"break_duration" validate:"required,min=1"`
	StartDate       string    `json:"start_date" validate:"required"`
	EndDate         string    `json:"end_date" validate:"required"`
}

func (p *GenerateParams) Validate() error {
	p.Year = core.CleanString(p.Year)
	p.Semester = core.CleanString(p.Semester)
	p.Department = core.CleanString(p.Department)
	p.StartTime = core.CleanString(p.StartTime)
	p.EndTime = core.CleanString(p.EndTime)
	p.StartDate = core.CleanString(p.StartDate)
	p.EndDate = core.CleanString(p.EndDate)
	return core.Validate.Struct(p)
}
