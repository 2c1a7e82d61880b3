package service

import (
	"fmt"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/internal/repository"
	"github.com/doguscu/barcode-scanner/internal/ws"

	"go.uber.org/zap"
)

const (
	lowStockTitle   = "Düşük Stok Uyarısı"
	lowStockMessage = "%s markasının stoku düştü (Kalan: %d adet)"
)

type NotificationService interface {
	MaybeNotifyLowStock(brand, barcode string, quantity int) (*model.Notification, error)
	GetAll() ([]model.Notification, error)
	UnreadCount() (int64, error)
	MarkRead(id int64) error
	MarkAllRead() (int64, error)
	Delete(id int64) error
	Clear() error
}

type notificationService struct {
	repo      repository.NotificationRepository
	threshold int
	wsHub     *ws.Hub
	logger    *zap.Logger
	now       Clock
}

func NewNotificationService(repo repository.NotificationRepository, threshold int, hub *ws.Hub, logger *zap.Logger, now Clock) NotificationService {
	return &notificationService{
		repo:      repo,
		threshold: threshold,
		wsHub:     hub,
		logger:    logger,
		now:       now,
	}
}

// MaybeNotifyLowStock records a LOW_STOCK notification when quantity is at or
// below the threshold, unless an unread one already exists for the barcode.
// It returns the created notification or nil when nothing was recorded.
func (s *notificationService) MaybeNotifyLowStock(brand, barcode string, quantity int) (*model.Notification, error) {
	if quantity > s.threshold {
		return nil, nil
	}

	exists, err := s.repo.HasUnread(model.NotificationLowStock, barcode)
	if err != nil {
		return nil, fmt.Errorf("check unread notifications: %w", err)
	}
	if exists {
		return nil, nil
	}

	related := barcode
	n := &model.Notification{
		Title:          lowStockTitle,
		Message:        fmt.Sprintf(lowStockMessage, brand, quantity),
		Type:           model.NotificationLowStock,
		RelatedBarcode: &related,
		CreatedDate:    model.EpochMillis(s.now()),
	}
	if err := s.repo.Create(n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.logger.Info("low stock notification created",
		zap.String("barcode", barcode),
		zap.String("brand", brand),
		zap.Int("quantity", quantity),
	)
	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeNotification,
		Action:  "notification_created",
		Data:    n,
		Message: n.Message,
	})
	return n, nil
}

func (s *notificationService) GetAll() ([]model.Notification, error) {
	return s.repo.FindAll()
}

func (s *notificationService) UnreadCount() (int64, error) {
	return s.repo.CountUnread()
}

func (s *notificationService) MarkRead(id int64) error {
	ok, err := s.repo.MarkRead(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead() (int64, error) {
	return s.repo.MarkAllRead()
}

func (s *notificationService) Delete(id int64) error {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) Clear() error {
	return s.repo.Clear()
}
