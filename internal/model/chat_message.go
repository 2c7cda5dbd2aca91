// Package model 定义数据库实体模型
// 本文件定义私聊消息模型
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ChatMessage 私聊消息模型
// 对应数据库 chat_message 表
// 消息只做软删除：删除时清空内容并改为 SYSTEM 类型，行本身保留，
// 保证历史顺序和计数不受影响
type ChatMessage struct {
	gorm.Model

	// Uuid 消息雪花 ID
	// 业务层引用消息（编辑/删除）使用此 ID 而非自增主键
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// ChatId 会话 key
	// 由 chatid.ConversationKey 推导，创建后不再变化
	ChatId string `gorm:"column:chat_id;index;type:char(48);not null;comment:会话key"`

	// SendId 发送者 uuid
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiveId 接收者 uuid，与发送者必不相同
	ReceiveId string `gorm:"column:receive_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息内容
	// TEXT 消息为正文；IMAGE 消息为媒体服务返回的 URL；删除后为空串
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// Type 消息类型：TEXT / IMAGE / SYSTEM
	// 参见 pkg/enum/message/message_type_enum
	Type string `gorm:"column:type;type:char(10);not null;comment:消息类型"`

	// Status 消息状态：DELIVERED / RECEIVED / READ
	// 只能向前推进，参见 pkg/enum/message/message_status_enum
	Status string `gorm:"column:status;type:char(10);not null;comment:消息状态"`

	// IsRead 是否已被接收者读取
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`

	// ReadAt 读取时间，随 markRead 批量写入
	ReadAt sql.NullTime `gorm:"column:read_at;comment:读取时间"`

	// IsEdited 是否被发送者编辑过
	IsEdited bool `gorm:"column:is_edited;not null;default:false;comment:是否编辑过"`

	// IsDeleted 是否被软删除
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false;comment:是否已删除"`
}

// TableName 指定表名
func (ChatMessage) TableName() string {
	return "chat_message"
}
