package notification

import (
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeRepository struct {
	notifications map[string]Notification
}

var _ Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{notifications: make(map[string]Notification)}
}

func (r *fakeRepository) CreateNotification(n Notification) (Notification, error) {
	r.notifications[n.ID] = n
	return n, nil
}

func (r *fakeRepository) QueryNotificationsByUser(userID string) ([]Notification, error) {
	var ns []Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			ns = append(ns, n)
		}
	}
	return ns, nil
}

func (r *fakeRepository) GetNotificationByID(id string) (Notification, error) {
	if n, ok := r.notifications[id]; ok {
		return n, nil
	}
	return Notification{}, ErrNotFound
}

func (r *fakeRepository) UpdateNotification(n Notification) (Notification, error) {
	if _, ok := r.notifications[n.ID]; !ok {
		return Notification{}, ErrNotFound
	}
	r.notifications[n.ID] = n
	return n, nil
}

func TestService_ForUser_newestFirst(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	now := time.Now().UTC()
	for i, id := range []string{"n1", "n2", "n3"} {
		_, _ = repo.CreateNotification(Notification{
			ID:        id,
			UserID:    "t1",
			Message:   "msg " + id,
			Timestamp: now.Add(time.Duration(i) * time.Minute),
		})
	}

	ns, err := svc.ForUser("t1")
	if err != nil {
		t.Fatalf("ForUser() failed: %v", err)
	}
	if len(ns) != 3 {
		t.Fatalf("ForUser() count = %d, want 3", len(ns))
	}
	for i := 1; i < len(ns); i++ {
		if ns[i].Timestamp.After(ns[i-1].Timestamp) {
			t.Errorf("notifications not sorted newest first: %v before %v", ns[i-1].Timestamp, ns[i].Timestamp)
		}
	}
}

func TestService_ForUser_equalTimestamps(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	// back-to-back inserts can land on the same clock tick
	now := time.Now().UTC()
	for _, id := range []string{"n3", "n1", "n2"} {
		_, _ = repo.CreateNotification(Notification{ID: id, UserID: "t1", Message: "msg " + id, Timestamp: now})
	}

	first, err := svc.ForUser("t1")
	if err != nil {
		t.Fatalf("ForUser() failed: %v", err)
	}
	for i, want := range []string{"n1", "n2", "n3"} {
		if first[i].ID != want {
			t.Fatalf("ForUser()[%d].ID = %s, want %s", i, first[i].ID, want)
		}
	}

	// repeated calls agree despite map iteration order
	for run := 0; run < 5; run++ {
		again, err := svc.ForUser("t1")
		if err != nil {
			t.Fatalf("ForUser() failed: %v", err)
		}
		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("ForUser() order changed between calls: %s vs %s at %d", again[i].ID, first[i].ID, i)
			}
		}
	}
}

func TestService_MarkRead(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	n, err := svc.Add("t1", "hello")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if n.Read {
		t.Error("Add() created a read notification")
	}

	got, err := svc.MarkRead("t1", n.ID)
	if err != nil {
		t.Fatalf("MarkRead() failed: %v", err)
	}
	if !got.Read {
		t.Error("MarkRead() did not mark the notification read")
	}

	// not visible to other users
	if _, err := svc.MarkRead("t2", n.ID); err != ErrNotFound {
		t.Errorf("MarkRead() for wrong user error = %v, want %v", err, ErrNotFound)
	}
}

func TestService_MarkAllRead(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nopLogger{})

	for _, msg := range []string{"a", "b", "c"} {
		if _, err := svc.Add("t1", msg); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}
	if _, err := svc.Add("t2", "other"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	if err := svc.MarkAllRead("t1"); err != nil {
		t.Fatalf("MarkAllRead() failed: %v", err)
	}

	ns, _ := repo.QueryNotificationsByUser("t1")
	for _, n := range ns {
		if !n.Read {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
	others, _ := repo.QueryNotificationsByUser("t2")
	for _, n := range others {
		if n.Read {
			t.Errorf("another user's notification %s was marked read", n.ID)
		}
	}
}
