package repository

import (
	"skillhive_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// FindById 按主键查找通知
func (r *notificationRepository) FindById(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 id=%d", id)
	}
	return &notification, nil
}

// FindByRecipient 查找接收者的全部通知，最新的在前
func (r *notificationRepository) FindByRecipient(recipientId string) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("recipient_id = ?", recipientId).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 recipient=%s", recipientId)
	}
	return notifications, nil
}

// CountUnreadByRecipient 统计接收者的未读通知数
func (r *notificationRepository) CountUnreadByRecipient(recipientId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 recipient=%s", recipientId)
	}
	return count, nil
}

// MarkRead 标记单条通知已读
func (r *notificationRepository) MarkRead(id uint) error {
	if err := r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记通知已读 id=%d", id)
	}
	return nil
}

// MarkAllRead 标记接收者全部通知已读
func (r *notificationRepository) MarkAllRead(recipientId string) error {
	if err := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientId, false).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记全部通知已读 recipient=%s", recipientId)
	}
	return nil
}
