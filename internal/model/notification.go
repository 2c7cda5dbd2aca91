// Package model 定义数据库实体模型
// 本文件定义通知模型
package model

import (
	"gorm.io/gorm"
)

// Notification 通知模型
// 对应数据库 notification 表
// 由社交动作（评论/点赞/关注）同步产生，recipient 与 actor 必不相同
// （自己触发的动作不产生通知，由 Service 层在创建前抑制）
// 除 is_read 的单向翻转外不可变
type Notification struct {
	gorm.Model

	// RecipientId 接收者 uuid
	RecipientId string `gorm:"column:recipient_id;index;type:char(20);not null;comment:接收者uuid"`

	// ActorId 触发者 uuid
	ActorId string `gorm:"column:actor_id;type:char(20);not null;comment:触发者uuid"`

	// Type 通知类型：LIKE / COMMENT / FOLLOW
	// 参见 pkg/enum/notification/notification_type_enum
	Type string `gorm:"column:type;type:char(10);not null;comment:通知类型"`

	// Message 通知摘要文本，如 "commented on your post: ..."
	Message string `gorm:"column:message;type:varchar(255);comment:通知内容"`

	// RelatedPostId 关联实体 ID（如帖子 uuid），可为空
	RelatedPostId string `gorm:"column:related_post_id;type:char(20);comment:关联帖子id"`

	// IsRead 是否已读，只允许 false -> true
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notification"
}
