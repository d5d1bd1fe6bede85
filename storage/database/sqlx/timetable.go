package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/core/timetable"
)

type timetableRow struct {
	ID         string    `db:"id"`
	Year       string    `db:"year"`
	Semester   string    `db:"semester"`
	Department string    `db:"department"`
	StartDate  string    `db:"start_date"`
	EndDate    string    `db:"end_date"`
	Schedule   []byte    `db:"schedule"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func newTimetableRow(tt timetable.Timetable) (timetableRow, error) {
	sched, err := json.Marshal(tt.Schedule)
	if err != nil {
		return timetableRow{}, errors.Wrap(err, "serializing schedule")
	}
	return timetableRow{
		ID:         tt.ID,
		Year:       tt.Year,
		Semester:   tt.Semester,
		Department: tt.Department,
		StartDate:  tt.StartDate,
		EndDate:    tt.EndDate,
		Schedule:   sched,
		CreatedAt:  tt.CreatedAt,
		UpdatedAt:  tt.UpdatedAt,
	}, nil
}

func (r timetableRow) toTimetable() (timetable.Timetable, error) {
	var sched timetable.Schedule
	if len(r.Schedule) > 0 {
		if err := json.Unmarshal(r.Schedule, &sched); err != nil {
			return timetable.Timetable{}, errors.Wrap(err, "parsing schedule")
		}
	}
	return timetable.Timetable{
		ID:         r.ID,
		Year:       r.Year,
		Semester:   r.Semester,
		Department: r.Department,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Schedule:   sched,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

type timetableRepository struct {
	db *sqlx.DB
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *sqlx.DB) timetable.Repository {
	return &timetableRepository{db: db}
}

func (repo *timetableRepository) CreateTimetable(tt timetable.Timetable) (timetable.Timetable, error) {
	row, err := newTimetableRow(tt)
	if err != nil {
		return timetable.Timetable{}, err
	}
	_, err = repo.db.NamedExec(`
		INSERT INTO timetable (id, year, semester, department, start_date, end_date, schedule, created_at, updated_at)
		VALUES (:id, :year, :semester, :department, :start_date, :end_date, :schedule, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return timetable.Timetable{}, errors.Wrap(err, "inserting timetable")
	}
	return tt, nil
}

func (repo *timetableRepository) QueryAllTimetables() ([]timetable.Timetable, error) {
	var rows []timetableRow
	if err := repo.db.Select(&rows, `SELECT * FROM timetable`); err != nil {
		return nil, errors.Wrap(err, "querying timetables")
	}
	tts := make([]timetable.Timetable, 0, len(rows))
	for _, row := range rows {
		tt, err := row.toTimetable()
		if err != nil {
			return nil, err
		}
		tts = append(tts, tt)
	}
	return tts, nil
}

func (repo *timetableRepository) GetTimetableByID(id string) (timetable.Timetable, error) {
	var row timetableRow
	if err := repo.db.Get(&row, `SELECT * FROM timetable WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return timetable.Timetable{}, timetable.ErrNotFound
		}
		return timetable.Timetable{}, errors.Wrap(err, "getting timetable")
	}
	return row.toTimetable()
}

func (repo *timetableRepository) UpdateTimetable(tt timetable.Timetable) (timetable.Timetable, error) {
	row, err := newTimetableRow(tt)
	if err != nil {
		return timetable.Timetable{}, err
	}
	res, err := repo.db.NamedExec(`
		UPDATE timetable
		SET year = :year, semester = :semester, department = :department, start_date = :start_date,
		    end_date = :end_date, schedule = :schedule, updated_at = :updated_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return timetable.Timetable{}, errors.Wrap(err, "updating timetable")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return timetable.Timetable{}, timetable.ErrNotFound
	}
	return tt, nil
}

func (repo *timetableRepository) DeleteTimetableByID(id string) error {
	res, err := repo.db.Exec(`DELETE FROM timetable WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting timetable")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return timetable.ErrNotFound
	}
	return nil
}
