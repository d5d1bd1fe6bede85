package snapshotdb

import (
	"github.com/slrtce/smartschedule/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

// cloneTeacher deep-copies the subjects and the password hash so the stored
// entry and the caller's value never share backing arrays.
func cloneTeacher(t teacher.Teacher) teacher.Teacher {
	if t.Subjects != nil {
		subjects := make([]string, len(t.Subjects))
		copy(subjects, t.Subjects)
		t.Subjects = subjects
	}
	if t.PasswordHash != nil {
		hash := make([]byte, len(t.PasswordHash))
		copy(hash, t.PasswordHash)
		t.PasswordHash = hash
	}
	return t
}

func (repo *teacherRepository) query() []teacher.Teacher {
	ts := make([]teacher.Teacher, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		ts = append(ts, cloneTeacher(*t))
	}
	return ts
}

func (repo *teacherRepository) CheckEmailUniqueness(email string, excluded ...teacher.Teacher) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.query() {
		if t.Email == email && !isExcluded(t, excluded) {
			return teacher.ErrEmailExists
		}
	}
	return nil
}

func isExcluded(t teacher.Teacher, excluded []teacher.Teacher) bool {
	for _, x := range excluded {
		if x.ID == t.ID {
			return true
		}
	}
	return false
}

func (repo *teacherRepository) CreateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored := cloneTeacher(t)
	repo.db.table[t.ID] = &stored
	return t, repo.db.snapshot()
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *teacherRepository) GetTeacherByID(id string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return cloneTeacher(*t), nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByEmail(email string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, t := range repo.query() {
		if t.Email == email {
			return t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) UpdateTeacher(t teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.table[t.ID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	t.CreatedAt = existing.CreatedAt
	if len(t.PasswordHash) == 0 {
		t.PasswordHash = existing.PasswordHash
	}
	stored := cloneTeacher(t)
	repo.db.table[t.ID] = &stored
	return t, repo.db.snapshot()
}

func (repo *teacherRepository) DeleteTeacherByID(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.table, id)
	return repo.db.snapshot()
}
