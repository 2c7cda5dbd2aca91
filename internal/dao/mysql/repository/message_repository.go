package repository

import (
	"time"

	"skillhive_server/internal/model"
	"skillhive_server/pkg/enum/message/message_status_enum"
	"skillhive_server/pkg/enum/message/message_type_enum"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(message *model.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindByUuid 按雪花 ID 查找消息
func (r *messageRepository) FindByUuid(uuid int64) (*model.ChatMessage, error) {
	var message model.ChatMessage
	if err := r.db.First(&message, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 uuid=%d", uuid)
	}
	return &message, nil
}

// FindByChatId 按会话 key 查找消息
// created_at 精度有限，追加主键排序保证同秒消息顺序稳定
func (r *messageRepository) FindByChatId(chatId string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if err := r.db.Where("chat_id = ?", chatId).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 chat_id=%s", chatId)
	}
	return messages, nil
}

// FindLastByChatId 查找会话最新一条消息
func (r *messageRepository) FindLastByChatId(chatId string) (*model.ChatMessage, error) {
	var message model.ChatMessage
	if err := r.db.Where("chat_id = ?", chatId).
		Order("created_at DESC").Order("id DESC").
		First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询最新消息 chat_id=%s", chatId)
	}
	return &message, nil
}

// UpdateContent 更新消息内容并置已编辑标记
// 只更新内容相关列，status/is_read 等并发推进的列不在写集合里
func (r *messageRepository) UpdateContent(uuid int64, content string) error {
	if err := r.db.Model(&model.ChatMessage{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"content":   content,
			"is_edited": true,
		}).Error; err != nil {
		return wrapDBErrorf(err, "更新消息内容 uuid=%d", uuid)
	}
	return nil
}

// SoftDelete 软删除消息
func (r *messageRepository) SoftDelete(uuid int64) error {
	if err := r.db.Model(&model.ChatMessage{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    "",
			"type":       message_type_enum.System,
		}).Error; err != nil {
		return wrapDBErrorf(err, "软删除消息 uuid=%d", uuid)
	}
	return nil
}

// MarkReadByChatIdAndReceiver 将会话内接收者的全部未读消息置为已读
// 单条 UPDATE 批量完成，同时把消息状态按状态机推进到 READ
func (r *messageRepository) MarkReadByChatIdAndReceiver(chatId, receiveId string, readAt time.Time) (int64, error) {
	result := r.db.Model(&model.ChatMessage{}).
		Where("chat_id = ? AND receive_id = ? AND is_read = ?", chatId, receiveId, false).
		Where("status IN ?", message_status_enum.Predecessors(message_status_enum.Read)).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
			"status":  message_status_enum.Read,
		})
	if result.Error != nil {
		return 0, wrapDBErrorf(result.Error, "标记消息已读 chat_id=%s", chatId)
	}
	return result.RowsAffected, nil
}

// CountUnreadByChatIdAndReceiver 统计会话内接收者的未读数
func (r *messageRepository) CountUnreadByChatIdAndReceiver(chatId, receiveId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ChatMessage{}).
		Where("chat_id = ? AND receive_id = ? AND is_read = ?", chatId, receiveId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读消息 chat_id=%s", chatId)
	}
	return count, nil
}

// CountUnreadByReceiver 统计接收者全部会话的未读总数
func (r *messageRepository) CountUnreadByReceiver(receiveId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ChatMessage{}).
		Where("receive_id = ? AND is_read = ?", receiveId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读消息 receive_id=%s", receiveId)
	}
	return count, nil
}
