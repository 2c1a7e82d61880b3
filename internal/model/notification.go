package model

type NotificationType string

const (
	NotificationLowStock NotificationType = "LOW_STOCK"
	NotificationInfo     NotificationType = "INFO"
	NotificationWarning  NotificationType = "WARNING"
)

type Notification struct {
	ID             int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string           `gorm:"not null" json:"title"`
	Message        string           `gorm:"not null" json:"message"`
	Type           NotificationType `gorm:"not null" json:"type"`
	RelatedBarcode *string          `json:"relatedBarcode"`
	IsRead         bool             `gorm:"not null" json:"isRead"`
	CreatedDate    int64            `gorm:"not null" json:"createdDate"`
}

func (Notification) TableName() string {
	return "notifications"
}
