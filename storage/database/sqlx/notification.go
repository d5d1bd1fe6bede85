package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/core/notification"
)

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(n notification.Notification) (notification.Notification, error) {
	_, err := repo.db.Exec(`
		INSERT INTO notification (id, user_id, message, timestamp, read)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, n.Message, n.Timestamp, n.Read,
	)
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "inserting notification")
	}
	return n, nil
}

func (repo *notificationRepository) QueryNotificationsByUser(userID string) ([]notification.Notification, error) {
	var ns []notification.Notification
	err := repo.db.Select(&ns, `
		SELECT id, user_id AS "userid", message, timestamp, read
		FROM notification WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying notifications")
	}
	return ns, nil
}

func (repo *notificationRepository) GetNotificationByID(id string) (notification.Notification, error) {
	var n notification.Notification
	err := repo.db.Get(&n, `
		SELECT id, user_id AS "userid", message, timestamp, read
		FROM notification WHERE id = $1`,
		id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return notification.Notification{}, notification.ErrNotFound
		}
		return notification.Notification{}, errors.Wrap(err, "getting notification")
	}
	return n, nil
}

func (repo *notificationRepository) UpdateNotification(n notification.Notification) (notification.Notification, error) {
	res, err := repo.db.Exec(`
		UPDATE notification SET message = $2, read = $3 WHERE id = $1`,
		n.ID, n.Message, n.Read,
	)
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "updating notification")
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return notification.Notification{}, notification.ErrNotFound
	}
	return n, nil
}
