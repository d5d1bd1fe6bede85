package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/core/teacher"
)

type teacherRow struct {
	ID                 string    `db:"id"`
	Name               string    `db:"name"`
	Email              string    `db:"email"`
	PhoneNumber        string    `db:"phone_number"`
	Department         string    `db:"department"`
	YearSpecialization string    `db:"year_specialization"`
	Subjects           []byte    `db:"subjects"`
	PasswordHash       []byte    `db:"password_hash"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func newTeacherRow(t teacher.Teacher) (teacherRow, error) {
	subjects, err := json.Marshal(t.Subjects)
	if err != nil {
		return teacherRow{}, errors.Wrap(err, "serializing subjects")
	}
	return teacherRow{
		ID:                 t.ID,
		Name:               t.Name,
		Email:              t.Email,
		PhoneNumber:        t.PhoneNumber,
		Department:         t.Department,
		YearSpecialization: t.YearSpecialization,
		Subjects:           subjects,
		PasswordHash:       t.PasswordHash,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}, nil
}

func (r teacherRow) toTeacher() (teacher.Teacher, error) {
	var subjects []string
	if len(r.Subjects) > 0 {
		if err := json.Unmarshal(r.Subjects, &subjects); err != nil {
			return teacher.Teacher{}, errors.Wrap(err, "parsing subjects")
		}
	}
	return teacher.Teacher{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		PhoneNumber:        r.PhoneNumber,
		Department:         r.Department,
		YearSpecialization: r.YearSpecialization,
		Subjects:           subjects,
		PasswordHash:       r.PasswordHash,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CheckEmailUniqueness(email string, excluded ...teacher.Teacher) error {
	query := `SELECT EXISTS (SELECT 1 FROM teacher WHERE email = ? AND id NOT IN (?))`
	exclIDs := make([]string, 0, len(excluded))
	for _, t := range excluded {
		exclIDs = append(exclIDs, t.ID)
	}
	if len(exclIDs) == 0 {
		exclIDs = append(exclIDs, "") // keep the IN clause valid
	}

	query, args, err := sqlx.In(query, email, exclIDs)
	if err != nil {
		return errors.Wrap(err, "binding uniqueness query")
	}

	var exists bool
	if err = repo.db.Get(&exists, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return teacher.ErrEmailExists
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	row, err := newTeacherRow(t)
	if err != nil {
		return teacher.Teacher{}, err
	}
	_, err = repo.db.NamedExec(`
		INSERT INTO teacher (id, name, email, phone_number, department, year_specialization, subjects, password_hash, created_at, updated_at)
		VALUES (:id, :name, :email, :phone_number, :department, :year_specialization, :subjects, :password_hash, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return t, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	var rows []teacherRow
	if err := repo.db.Select(&rows, `SELECT * FROM teacher`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	ts := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		t, err := row.toTeacher()
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (repo *teacherRepository) getOne(query string, arg interface{}) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return row.toTeacher()
}

func (repo *teacherRepository) GetTeacherByID(id string) (teacher.Teacher, error) {
	return repo.getOne(`SELECT * FROM teacher WHERE id = $1`, id)
}

func (repo *teacherRepository) GetTeacherByEmail(email string) (teacher.Teacher, error) {
	return repo.getOne(`SELECT * FROM teacher WHERE email = $1`, email)
}

func (repo *teacherRepository) UpdateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	row, err := newTeacherRow(t)
	if err != nil {
		return teacher.Teacher{}, err
	}
	var updated teacherRow
	err = repo.db.Get(&updated, `
		UPDATE teacher
		SET name = $2, email = $3, phone_number = $4, department = $5, year_specialization = $6, subjects = $7,
		    password_hash = COALESCE(NULLIF($8::bytea, ''::bytea), password_hash), updated_at = $9
		WHERE id = $1
		RETURNING *`,
		row.ID, row.Name, row.Email, row.PhoneNumber, row.Department, row.YearSpecialization, row.Subjects,
		row.PasswordHash, row.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	return updated.toTeacher()
}

func (repo *teacherRepository) DeleteTeacherByID(id string) error {
	res, err := repo.db.Exec(`DELETE FROM teacher WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return teacher.ErrNotFound
	}
	return nil
}
