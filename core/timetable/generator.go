package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slrtce/smartschedule/core"
)

// Slot counts per day: 4 lectures, lunch, an optional lab, 2 more lectures.
const (
	morningLectureSlots   = 4
	afternoonLectureSlots = 2
)

var ErrEmptySubjectSet = errors.New("at least one non-lab subject is required")

// Generator builds weekly schedules by round-robin assignment of subjects
// into fixed daily slots. The "AI" of the original product; it mimics
// processing time with a configurable delay before computing anything.
type Generator struct {
	delay time.Duration
}

func NewGenerator(delay time.Duration) *Generator {
	return &Generator{delay: delay}
}

// Generate produces a Monday-Friday schedule from params. Slot times chain
// from params.StartTime so lectures within a day are contiguous and
// non-overlapping by construction. It fails with ErrEmptySubjectSet when no
// lecture subject is supplied, before any slot is computed.
func (g *Generator) Generate(ctx context.Context, params GenerateParams) (Schedule, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	var lectures, labs []Subject
	for _, s := range params.Subjects {
		if s.IsLab() {
			labs = append(labs, s)
		} else {
			lectures = append(lectures, s)
		}
	}
	if len(lectures) == 0 {
		return nil, core.NewValidationError(
			ErrEmptySubjectSet,
			core.FieldError{Field: "subjects", Error: ErrEmptySubjectSet.Error()},
		)
	}

	// Cyclic assignment counters, scoped to this run.
	var lectureIdx, labIdx int

	schedule := make(Schedule, 0, len(Weekdays))
	for _, day := range Weekdays {
		slots := make([]Lecture, 0, morningLectureSlots+afternoonLectureSlots+2)
		current := params.StartTime

		var dayLab *Subject
		if len(labs) > 0 {
			dayLab = &labs[labIdx%len(labs)]
			labIdx++
		}

		// morning session
		for i := 0; i < morningLectureSlots; i++ {
			subj := lectures[lectureIdx%len(lectures)]
			next, err := AddMinutes(current, params.LectureDuration)
			if err != nil {
				return nil, err
			}
			slots = append(slots, Lecture{
				Time:    current + " - " + next,
				Subject: subj.Name,
				Teacher: subj.DefaultTeacher,
				Room:    room(params.Year, subj, labIdx),
			})
			current = next
			lectureIdx++
		}

		// lunch break
		next, err := AddMinutes(current, params.BreakDuration)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Lecture{
			Time:    current + " - " + next,
			Subject: BreakSubject,
			Teacher: NotApplicable,
			Room:    NotApplicable,
			IsBreak: true,
		})
		current = next

		// afternoon session
		if dayLab != nil {
			next, err := AddMinutes(current, params.LabDuration)
			if err != nil {
				return nil, err
			}
			slots = append(slots, Lecture{
				Time:    current + " - " + next,
				Subject: dayLab.Name,
				Teacher: dayLab.DefaultTeacher,
				Room:    room(params.Year, *dayLab, labIdx),
			})
			current = next
		}

		for i := 0; i < afternoonLectureSlots; i++ {
			subj := lectures[lectureIdx%len(lectures)]
			next, err := AddMinutes(current, params.LectureDuration)
			if err != nil {
				return nil, err
			}
			slots = append(slots, Lecture{
				Time:    current + " - " + next,
				Subject: subj.Name,
				Teacher: subj.DefaultTeacher,
				Room:    room(params.Year, subj, labIdx),
			})
			current = next
			lectureIdx++
		}

		schedule = append(schedule, DaySchedule{Day: day, Lectures: slots})
	}

	return schedule, nil
}

// wait simulates AI processing time; it is cancellable via ctx.
func (g *Generator) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// room assigns a templated room per subject: labs rotate over 5 numbered
// lab rooms per year, lectures share the year's home room.
func room(year string, subj Subject, labIdx int) string {
	num, ok := yearNumbers[year]
	if !ok {
		num = 1
	}
	if subj.IsLab() {
		return fmt.Sprintf("Lab %d5%d", num, labIdx%5+1)
	}
	return fmt.Sprintf("Room %d01", num)
}
