package repository

import (
	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/database"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	FindAll() ([]model.Notification, error)
	CountUnread() (int64, error)
	HasUnread(notificationType model.NotificationType, barcode string) (bool, error)
	MarkRead(id int64) (bool, error)
	MarkAllRead() (int64, error)
	Delete(id int64) (bool, error)
	Clear() error
}

type notificationRepo struct {
	store *database.Store
}

func NewNotificationRepo(store *database.Store) NotificationRepository {
	return &notificationRepo{store}
}

func (r *notificationRepo) Create(n *model.Notification) error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Create(n).Error
	})
}

func (r *notificationRepo) FindAll() ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.store.DB().Order("created_date DESC").Order("id DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) CountUnread() (int64, error) {
	var count int64
	err := r.store.DB().Model(&model.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// HasUnread reports whether an unread notification of the given type is
// already attached to the barcode.
func (r *notificationRepo) HasUnread(notificationType model.NotificationType, barcode string) (bool, error) {
	var count int64
	err := r.store.DB().Model(&model.Notification{}).
		Where("type = ? AND related_barcode = ? AND is_read = ?", notificationType, barcode, false).
		Count(&count).Error
	return count > 0, err
}

func (r *notificationRepo) MarkRead(id int64) (bool, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *notificationRepo) MarkAllRead() (int64, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Model(&model.Notification{}).Where("is_read = ?", false).Update("is_read", true)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *notificationRepo) Delete(id int64) (bool, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Delete(&model.Notification{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *notificationRepo) Clear() error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Notification{}).Error
	})
}
