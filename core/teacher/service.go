package teacher

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slrtce/smartschedule/core"
)

var (
	// errors
	ErrNotFound    = errors.New("teacher not found")
	ErrEmailExists = errors.New("a teacher with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excluded ...Teacher) error
		CreateTeacher(t Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		GetTeacherByEmail(email string) (Teacher, error)
		UpdateTeacher(t Teacher) (Teacher, error)
		DeleteTeacherByID(id string) error
	}

	// AdminNotifier records an in-app notification for the administrator;
	// implemented by notification.Service.
	AdminNotifier interface {
		NotifyAdmin(message string)
	}

	// ScheduleCascader unassigns a teacher from all timetables;
	// implemented by timetable.Service.
	ScheduleCascader interface {
		UnassignTeacher(name string) error
	}

	Service struct {
		repo      Repository
		notifier  AdminNotifier
		schedules ScheduleCascader
		log       core.Logger
	}
)

func NewService(repo Repository, notifier AdminNotifier, schedules ScheduleCascader, log core.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, schedules: schedules, log: log}
}

func (svc *Service) checkUniqueness(email string, excluded ...Teacher) error {
	if err := svc.repo.CheckEmailUniqueness(email, excluded...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a teacher account and informs the administrator.
func (svc *Service) Register(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	t := Teacher{
		ID:                 uuid.New().String(),
		Name:               nt.Name,
		Email:              nt.Email,
		PhoneNumber:        nt.PhoneNumber,
		Department:         nt.Department,
		YearSpecialization: nt.YearSpecialization,
		Subjects:           nt.Subjects,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := t.SetPassword(nt.Password); err != nil {
		return Teacher{}, err
	}
	t, err := svc.repo.CreateTeacher(t)
	if err != nil {
		return Teacher{}, err
	}
	svc.notifier.NotifyAdmin(fmt.Sprintf("%s has registered as a new teacher.", t.Name))
	return t, nil
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) GetByEmail(email string) (Teacher, error) {
	return svc.repo.GetTeacherByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(id string, ut UpdateTeacher) (Teacher, error) {
	t := Teacher{
		ID:                 id,
		Name:               ut.Name,
		Email:              ut.Email,
		PhoneNumber:        ut.PhoneNumber,
		Department:         ut.Department,
		YearSpecialization: ut.YearSpecialization,
		Subjects:           ut.Subjects,
		UpdatedAt:          time.Now().UTC(),
	}
	if ut.Password != "" {
		if err := t.SetPassword(ut.Password); err != nil {
			return Teacher{}, err
		}
	}
	return svc.repo.UpdateTeacher(t)
}

// Delete removes a teacher and unassigns them from every timetable.
func (svc *Service) Delete(id string) error {
	t, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return err
	}
	if err := svc.schedules.UnassignTeacher(t.Name); err != nil {
		return err
	}
	return svc.repo.DeleteTeacherByID(id)
}
