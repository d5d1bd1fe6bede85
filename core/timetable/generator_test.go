package timetable

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/slrtce/smartschedule/core"
)

func sampleParams() GenerateParams {
	return GenerateParams{
		Year:       YearFirst,
		Semester:   "Semester 1",
		Department: "Computer Engineering",
		Subjects: []Subject{
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

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator(0)

	sched, err := gen.Generate(context.Background(), sampleParams())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if len(sched) != len(Weekdays) {
		t.Fatalf("Generate() days = %d, want %d", len(sched), len(Weekdays))
	}
	for i, day := range sched {
		if day.Day != Weekdays[i] {
			t.Errorf("day[%d] = %s, want %s", i, day.Day, Weekdays[i])
		}
		// 4 morning lectures + break + lab + 2 afternoon lectures
		if len(day.Lectures) != 8 {
			t.Errorf("%s: slots = %d, want 8", day.Day, len(day.Lectures))
		}
		if !day.Lectures[4].IsBreak {
			t.Errorf("%s: slot 4 is not the break", day.Day)
		}
	}

	monday := sched[0]
	first := monday.Lectures[0]
	if first.Time != "09:00 - 09:50" || first.Subject != "Math" || first.Teacher != "A" || first.Room != "Room 101" {
		t.Errorf("unexpected first slot: %+v", first)
	}
	if brk := monday.Lectures[4]; brk.Time != "12:20 - 13:00" || brk.Subject != BreakSubject || brk.Teacher != NotApplicable {
		t.Errorf("unexpected break slot: %+v", brk)
	}
	if lab := monday.Lectures[5]; lab.Subject != "Physics Lab" || lab.Time != "13:00 - 14:40" || lab.Room != "Lab 152" {
		t.Errorf("unexpected lab slot: %+v", lab)
	}
}

func TestGenerator_Generate_contiguousSlots(t *testing.T) {
	gen := NewGenerator(0)

	sched, err := gen.Generate(context.Background(), sampleParams())
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	for _, day := range sched {
		for i := 1; i < len(day.Lectures); i++ {
			prevEnd := strings.Split(day.Lectures[i-1].Time, " - ")[1]
			currStart := strings.Split(day.Lectures[i].Time, " - ")[0]
			if prevEnd != currStart {
				t.Errorf("%s: slot %d starts at %s, previous ends at %s", day.Day, i, currStart, prevEnd)
			}
		}
	}
}

func TestGenerator_Generate_roundRobin(t *testing.T) {
	gen := NewGenerator(0)

	params := sampleParams()
	params.Subjects = []Subject{
		{Name: "Math", DefaultTeacher: "A"},
		{Name: "Physics", DefaultTeacher: "B"},
		{Name: "Chemistry", DefaultTeacher: "C"},
		{Name: "English", DefaultTeacher: "D"},
	}

	sched, err := gen.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// 6 lecture slots per day over 5 days; 30 draws over 4 subjects must
	// spread between floor and ceil of the even share.
	counts := make(map[string]int)
	for _, day := range sched {
		for _, l := range day.Lectures {
			if !l.IsBreak {
				counts[l.Subject]++
			}
		}
	}
	for _, s := range params.Subjects {
		if c := counts[s.Name]; c < 7 || c > 8 {
			t.Errorf("subject %s drawn %d times, want 7 or 8", s.Name, c)
		}
	}
}

func TestGenerator_Generate_labRotation(t *testing.T) {
	gen := NewGenerator(0)

	params := sampleParams()
	params.Year = YearThird
	params.Subjects = []Subject{
		{Name: "Math", DefaultTeacher: "A"},
		{Name: "Physics Lab", DefaultTeacher: "B"},
		{Name: "Chemistry Lab", DefaultTeacher: "C"},
	}

	sched, err := gen.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	wantLabs := []string{"Physics Lab", "Chemistry Lab", "Physics Lab", "Chemistry Lab", "Physics Lab"}
	wantRooms := []string{"Lab 352", "Lab 353", "Lab 354", "Lab 355", "Lab 351"}
	for i, day := range sched {
		lab := day.Lectures[5]
		if lab.Subject != wantLabs[i] {
			t.Errorf("%s: lab = %s, want %s", day.Day, lab.Subject, wantLabs[i])
		}
		if lab.Room != wantRooms[i] {
			t.Errorf("%s: lab room = %s, want %s", day.Day, lab.Room, wantRooms[i])
		}
	}
}

func TestGenerator_Generate_noLabs(t *testing.T) {
	gen := NewGenerator(0)

	params := sampleParams()
	params.Subjects = []Subject{
		{Name: "Math", DefaultTeacher: "A"},
		{Name: "Physics", DefaultTeacher: "B"},
	}

	sched, err := gen.Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	for _, day := range sched {
		// 6 lectures + break, no lab slot
		if len(day.Lectures) != 7 {
			t.Errorf("%s: slots = %d, want 7", day.Day, len(day.Lectures))
		}
		for _, l := range day.Lectures {
			if strings.Contains(strings.ToLower(l.Subject), "lab") {
				t.Errorf("%s: unexpected lab slot %+v", day.Day, l)
			}
		}
	}
}

func TestGenerator_Generate_emptyLectures(t *testing.T) {
	gen := NewGenerator(0)

	params := sampleParams()
	params.Subjects = []Subject{{Name: "Physics Lab", DefaultTeacher: "B"}}

	_, err := gen.Generate(context.Background(), params)
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Generate() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "subjects" {
		t.Errorf("unexpected field errors: %+v", vErr.Fields)
	}
}

func TestGenerator_Generate_cancelled(t *testing.T) {
	gen := NewGenerator(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gen.Generate(ctx, sampleParams()); err != context.Canceled {
		t.Errorf("Generate() error = %v, want %v", err, context.Canceled)
	}
}
