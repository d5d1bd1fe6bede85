package timetable

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/slrtce/smartschedule/core"
)

var ErrNotFound = errors.New("timetable not found")

type (
	Repository interface {
		CreateTimetable(tt Timetable) (Timetable, error)
		QueryAllTimetables() ([]Timetable, error)
		GetTimetableByID(id string) (Timetable, error)
		UpdateTimetable(tt Timetable) (Timetable, error)
		DeleteTimetableByID(id string) error
	}

	Service struct {
		repo Repository
		gen  *Generator
		log  core.Logger
	}
)

func NewService(repo Repository, gen *Generator, log core.Logger) *Service {
	return &Service{repo: repo, gen: gen, log: log}
}

// Generate runs the generator and persists the resulting timetable.
func (svc *Service) Generate(ctx context.Context, params GenerateParams) (Timetable, error) {
	if err := params.Validate(); err != nil {
		return Timetable{}, err
	}
	sched, err := svc.gen.Generate(ctx, params)
	if err != nil {
		return Timetable{}, err
	}

	now := time.Now().UTC()
	tt := Timetable{
		ID:         uuid.New().String(),
		Year:       params.Year,
		Semester:   params.Semester,
		Department: params.Department,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Schedule:   sched,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	svc.log.Info("timetable generated for " + tt.Department + " (" + tt.Year + ")")
	return svc.repo.CreateTimetable(tt)
}

func (svc *Service) QueryAll() ([]Timetable, error) {
	return svc.repo.QueryAllTimetables()
}

func (svc *Service) GetByID(id string) (Timetable, error) {
	return svc.repo.GetTimetableByID(id)
}

// Update replaces a timetable wholesale; partial edits are made by the
// caller on a fetched copy.
func (svc *Service) Update(tt Timetable) (Timetable, error) {
	if _, err := svc.repo.GetTimetableByID(tt.ID); err != nil {
		return Timetable{}, err
	}
	tt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTimetable(tt)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteTimetableByID(id)
}

// UnassignTeacher replaces every lecture taught by the named teacher with
// the unassigned sentinel, across all timetables. Used when a teacher is
// removed from the roster.
func (svc *Service) UnassignTeacher(name string) error {
	tts, err := svc.repo.QueryAllTimetables()
	if err != nil {
		return err
	}
	for _, tt := range tts {
		var changed bool
		for d, day := range tt.Schedule {
			for l, lec := range day.Lectures {
				if lec.Teacher == name {
					tt.Schedule[d].Lectures[l].Teacher = UnassignedTeacher
					changed = true
				}
			}
		}
		if changed {
			tt.UpdatedAt = time.Now().UTC()
			if _, err := svc.repo.UpdateTimetable(tt); err != nil {
				return err
			}
		}
	}
	return nil
}
