package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotifications(
	ctx context.Context,
	ns []models.Notification,
) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *NotificationGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
	unreadOnly bool,
	limit int,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Notification
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationGormRepository) UnreadCount(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkRead flags a notification as read; only the recipient may do it.
func (r *NotificationGormRepository) MarkRead(
	ctx context.Context,
	id uint,
	userID uint,
) error {

	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return notFound(err, "notification_not_found")
	}

	return r.db.WithContext(ctx).
		Model(&n).
		UpdateColumn("is_read", true).Error
}

var _ notify.Store = (*NotificationGormRepository)(nil)
