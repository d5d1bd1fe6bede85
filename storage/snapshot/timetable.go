package snapshotdb

import (
	"github.com/slrtce/smartschedule/core/timetable"
)

type timetableRepository struct {
	db *timetableTable
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db.timetable}
}

// cloneTimetable deep-copies the schedule so the stored entry and the
// caller's value never share backing arrays. A plain struct copy only copies
// the slice headers.
func cloneTimetable(tt timetable.Timetable) timetable.Timetable {
	if tt.Schedule == nil {
		return tt
	}
	sched := make(timetable.Schedule, len(tt.Schedule))
	for i, day := range tt.Schedule {
		lectures := make([]timetable.Lecture, len(day.Lectures))
		copy(lectures, day.Lectures)
		day.Lectures = lectures
		sched[i] = day
	}
	tt.Schedule = sched
	return tt
}

func (repo *timetableRepository) CreateTimetable(tt timetable.Timetable) (timetable.Timetable, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored := cloneTimetable(tt)
	repo.db.table[tt.ID] = &stored
	return tt, repo.db.snapshot()
}

func (repo *timetableRepository) QueryAllTimetables() ([]timetable.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tts := make([]timetable.Timetable, 0, len(repo.db.table))
	for _, tt := range repo.db.table {
		tts = append(tts, cloneTimetable(*tt))
	}
	return tts, nil
}

func (repo *timetableRepository) GetTimetableByID(id string) (timetable.Timetable, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tt, ok := repo.db.table[id]; ok {
		return cloneTimetable(*tt), nil
	}
	return timetable.Timetable{}, timetable.ErrNotFound
}

func (repo *timetableRepository) UpdateTimetable(tt timetable.Timetable) (timetable.Timetable, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	existing, ok := repo.db.table[tt.ID]
	if !ok {
		return timetable.Timetable{}, timetable.ErrNotFound
	}
	tt.CreatedAt = existing.CreatedAt
	stored := cloneTimetable(tt)
	repo.db.table[tt.ID] = &stored
	return tt, repo.db.snapshot()
}

func (repo *timetableRepository) DeleteTimetableByID(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return timetable.ErrNotFound
	}
	delete(repo.db.table, id)
	return repo.db.snapshot()
}
