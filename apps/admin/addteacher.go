package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/slrtce/smartschedule/core"
	"github.com/slrtce/smartschedule/core/teacher"
)

// addTeacher updates or creates a teacher.Teacher
func (cli *commandLine) addTeacher(name, email, phone, department, year, pwd string) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	t, err := cli.teacherRepo.GetTeacherByEmail(email)
	if err != nil {
		if err != teacher.ErrNotFound {
			return err
		}
		t = teacher.Teacher{
			ID:        uuid.New().String(),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
		t.Name = name
		t.PhoneNumber = core.CleanString(phone)
		t.Department = core.CleanString(department)
		t.YearSpecialization = core.CleanString(year)
		if err := t.SetPassword(pwd); err != nil {
			return err
		}
		t.UpdatedAt = t.CreatedAt
		_, err = cli.teacherRepo.CreateTeacher(t)
		return err
	}

	t.Name = name
	if phone != "" {
		t.PhoneNumber = core.CleanString(phone)
	}
	if department != "" {
		t.Department = core.CleanString(department)
	}
	if year != "" {
		t.YearSpecialization = core.CleanString(year)
	}
	if err := t.SetPassword(pwd); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	_, err = cli.teacherRepo.UpdateTeacher(t)
	return err
}
