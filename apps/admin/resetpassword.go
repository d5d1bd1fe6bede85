package main

import (
	"time"

	"github.com/slrtce/smartschedule/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	t, err := cli.teacherRepo.GetTeacherByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := t.SetPassword(pwd); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	if _, err := cli.teacherRepo.UpdateTeacher(t); err != nil {
		return err
	}
	return nil
}
