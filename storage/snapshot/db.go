package snapshotdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/core/notification"
	"github.com/slrtce/smartschedule/core/teacher"
	"github.com/slrtce/smartschedule/core/timetable"
)

// Snapshot file names, one flat JSON document per collection. The whole
// collection is rewritten on every mutation; the files double as the durable
// state between runs.
const (
	teachersFile      = "smartschedule-teachers.json"
	timetablesFile    = "smartschedule-timetables.json"
	notificationsFile = "smartschedule-notifications.json"
)

type (
	DB struct {
		teacher      *teacherTable
		timetable    *timetableTable
		notification *notificationTable
	}

	teacherTable struct {
		sync.RWMutex
		table map[string]*teacher.Teacher
		path  string
	}

	timetableTable struct {
		sync.RWMutex
		table map[string]*timetable.Timetable
		path  string
	}

	notificationTable struct {
		sync.RWMutex
		table map[string]*notification.Notification
		path  string
	}
)

// Open loads any existing snapshots from dir and returns the store.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}

	db := &DB{
		teacher:      &teacherTable{table: make(map[string]*teacher.Teacher), path: filepath.Join(dir, teachersFile)},
		timetable:    &timetableTable{table: make(map[string]*timetable.Timetable), path: filepath.Join(dir, timetablesFile)},
		notification: &notificationTable{table: make(map[string]*notification.Notification), path: filepath.Join(dir, notificationsFile)},
	}

	var teachers []teacherRecord
	if err := load(db.teacher.path, &teachers); err != nil {
		return nil, err
	}
	for i := range teachers {
		t := teachers[i].Teacher
		t.PasswordHash = teachers[i].PasswordHash
		db.teacher.table[t.ID] = &t
	}

	var timetables []timetable.Timetable
	if err := load(db.timetable.path, &timetables); err != nil {
		return nil, err
	}
	for i := range timetables {
		db.timetable.table[timetables[i].ID] = &timetables[i]
	}

	var notifications []notification.Notification
	if err := load(db.notification.path, &notifications); err != nil {
		return nil, err
	}
	for i := range notifications {
		db.notification.table[notifications[i].ID] = &notifications[i]
	}

	return db, nil
}

func load(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading snapshot "+path)
	}
	return errors.Wrap(json.Unmarshal(data, out), "parsing snapshot "+path)
}

func save(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "serializing snapshot "+path)
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "writing snapshot "+path)
}

// teacherRecord re-exposes the password hash, which the API serialization
// hides, so credentials survive a restart.
type teacherRecord struct {
	teacher.Teacher
	PasswordHash []byte `json:"password_hash,omitempty"`
}

// snapshot must be called with the write lock held.
func (tbl *teacherTable) snapshot() error {
	ts := make([]teacherRecord, 0, len(tbl.table))
	for _, t := range tbl.table {
		ts = append(ts, teacherRecord{Teacher: *t, PasswordHash: t.PasswordHash})
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].CreatedAt.Before(ts[j].CreatedAt) })
	return save(tbl.path, ts)
}

func (tbl *timetableTable) snapshot() error {
	tts := make([]timetable.Timetable, 0, len(tbl.table))
	for _, tt := range tbl.table {
		tts = append(tts, *tt)
	}
	sort.Slice(tts, func(i, j int) bool { return tts[i].CreatedAt.Before(tts[j].CreatedAt) })
	return save(tbl.path, tts)
}

func (tbl *notificationTable) snapshot() error {
	ns := make([]notification.Notification, 0, len(tbl.table))
	for _, n := range tbl.table {
		ns = append(ns, *n)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].Timestamp.Before(ns[j].Timestamp) })
	return save(tbl.path, ns)
}
