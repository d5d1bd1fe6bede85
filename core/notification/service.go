package notification

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/slrtce/smartschedule/core"
)

var ErrNotFound = errors.New("notification not found")

type (
	Repository interface {
		CreateNotification(n Notification) (Notification, error)
		QueryNotificationsByUser(userID string) ([]Notification, error)
		GetNotificationByID(id string) (Notification, error)
		UpdateNotification(n Notification) (Notification, error)
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Add records an unread notification for the user. Every call produces a
// distinct entry; there is no dedup.
func (svc *Service) Add(userID, message string) (Notification, error) {
	n := Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	return svc.repo.CreateNotification(n)
}

// NotifyAdmin records an audit notification for the administrator.
func (svc *Service) NotifyAdmin(message string) {
	if _, err := svc.Add(AdminUserID, message); err != nil {
		svc.log.Error("recording admin notification: "+err.Error(), err)
	}
}

// ForUser returns the user's notifications, newest first. Entries sharing a
// timestamp are ordered by ID so the listing is stable across calls.
func (svc *Service) ForUser(userID string) ([]Notification, error) {
	ns, err := svc.repo.QueryNotificationsByUser(userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Timestamp.Equal(ns[j].Timestamp) {
			return ns[i].ID < ns[j].ID
		}
		return ns[i].Timestamp.After(ns[j].Timestamp)
	})
	return ns, nil
}

// MarkRead marks the user's notification as read. A notification belonging
// to another user is reported as not found.
func (svc *Service) MarkRead(userID, id string) (Notification, error) {
	n, err := svc.repo.GetNotificationByID(id)
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != userID {
		return Notification{}, ErrNotFound
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	return svc.repo.UpdateNotification(n)
}

func (svc *Service) MarkAllRead(userID string) error {
	ns, err := svc.repo.QueryNotificationsByUser(userID)
	if err != nil {
		return err
	}
	for _, n := range ns {
		if n.Read {
			continue
		}
		n.Read = true
		if _, err := svc.repo.UpdateNotification(n); err != nil {
			return err
		}
	}
	return nil
}
