package teacher

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/slrtce/smartschedule/core"
)

type Teacher struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PhoneNumber        string    `json:"phone_number"`
	Department         string    `json:"department"`
	YearSpecialization string    `json:"year_specialization"`
	Subjects           []string  `json:"subjects"`
	PasswordHash       []byte    `json:"-"`
	CreatedAt          time.Time `json:"created_at"` // UTC
	UpdatedAt          time.Time `json:"updated_at"` // UTC
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

// HasContactInfo reports whether the teacher can be reached by email and SMS.
func (t *Teacher) HasContactInfo() bool {
	return t.Email != "" && t.PhoneNumber != ""
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	PhoneNumber        string   `json:"phone_number" validate:"required,min=7"`
	Department         string   `json:"department" validate:"required"`
	YearSpecialization string   `json:"year_specialization" validate:"required,yearlabel"`
	Subjects           []string `json:"subjects" validate:"omitempty,dive,required"`
	Password           string   `json:"password" validate:"required"`
	PasswordConfirm    string   `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nt *NewTeacher) Validate(svc *Service) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.PhoneNumber = core.CleanString(nt.PhoneNumber)
	nt.Department = core.CleanString(nt.Department)
	nt.YearSpecialization = core.CleanString(nt.YearSpecialization)

	if err := checkEmailDomain(nt.Email); err != nil {
		return err
	}
	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkUniqueness(nt.Email)
}

// UpdateTeacher defines what information may be provided to modify an
// existing Teacher. Empty fields keep their current value.
type UpdateTeacher struct {
	Name               string   `json:"name"`
	Email              string   `json:"email" validate:"omitempty,email"`
	PhoneNumber        string   `json:"phone_number" validate:"omitempty,min=7"`
	Department         string   `json:"department"`
	YearSpecialization string   `json:"year_specialization" validate:"omitempty,yearlabel"`
	Subjects           []string `json:"subjects" validate:"omitempty,dive,required"`
	Password           string   `json:"password" validate:"omitempty"`
	PasswordConfirm    string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (ut *UpdateTeacher) Validate(orig Teacher, svc *Service) error {
	if name := core.CleanString(ut.Name); name != "" {
		ut.Name = name
	} else {
		ut.Name = orig.Name
	}
	if email := core.CleanString(ut.Email, true /* lower */); email != "" {
		ut.Email = email
	} else {
		ut.Email = orig.Email
	}
	if phone := core.CleanString(ut.PhoneNumber); phone != "" {
		ut.PhoneNumber = phone
	} else {
		ut.PhoneNumber = orig.PhoneNumber
	}
	if dept := core.CleanString(ut.Department); dept != "" {
		ut.Department = dept
	} else {
		ut.Department = orig.Department
	}
	if year := core.CleanString(ut.YearSpecialization); year != "" {
		ut.YearSpecialization = year
	} else {
		ut.YearSpecialization = orig.YearSpecialization
	}

	if ut.Subjects == nil {
		ut.Subjects = orig.Subjects
	}

	if err := checkEmailDomain(ut.Email); err != nil {
		return err
	}
	if err := core.Validate.Struct(ut); err != nil {
		return err
	}
	return svc.checkUniqueness(ut.Email, orig)
}

// checkEmailDomain enforces the institution's email domain on teacher accounts.
func checkEmailDomain(email string) error {
	domain := core.Conf.GetString("emailDomain")
	if domain == "" || strings.HasSuffix(email, "@"+domain) {
		return nil
	}
	return core.NewValidationError(
		nil,
		core.FieldError{Field: "email", Error: "email must belong to the " + domain + " domain"},
	)
}
