package timetable

import (
	"github.com/go-playground/validator/v10"

	"github.com/slrtce/smartschedule/core"
)

var (
	hhmmTag  = "hhmm"
	hhmmText = "must be a valid HH:MM time"

	yearLabelTag  = "yearlabel"
	yearLabelText = "invalid class year"
)

func init() {
	_ = core.Validate.RegisterValidation(hhmmTag, hhmmValidation)
	core.RegisterCustomTranslation(hhmmTag, hhmmText)

	_ = core.Validate.RegisterValidation(yearLabelTag, yearLabelValidation)
	core.RegisterCustomTranslation(yearLabelTag, yearLabelText)
}

// hhmmValidation checks for a well-formed "HH:MM" clock time.
func hhmmValidation(fl validator.FieldLevel) bool {
	_, err := parseClock(fl.Field().String())
	return err == nil
}

// yearLabelValidation checks that the value is one of the known class years.
func yearLabelValidation(fl validator.FieldLevel) bool {
	_, ok := yearNumbers[fl.Field().String()]
	return ok
}
