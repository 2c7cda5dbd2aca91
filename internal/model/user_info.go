// Package model 定义数据库实体模型
// 本文件定义用户模型
package model

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 用户模型
// 对应数据库 user_info 表
// 在线状态直接挂在用户记录上（而非单独的表），
// 由 WebSocket 连接生命周期驱动更新
type UserInfo struct {
	gorm.Model

	// Uuid 用户唯一标识，'U' 前缀 + 随机串
	// 只包含字母数字，可安全参与会话 key 拼接
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:用户uuid"`

	// Username 用户名，全局唯一
	Username string `gorm:"column:username;uniqueIndex;type:varchar(32);not null;comment:用户名"`

	// Email 邮箱
	Email string `gorm:"column:email;type:varchar(64);comment:邮箱"`

	// Password bcrypt 哈希后的密码
	Password string `gorm:"column:password;type:varchar(80);not null;comment:密码哈希"`

	// AvatarUrl 头像 URL
	AvatarUrl string `gorm:"column:avatar_url;type:varchar(255);comment:头像url"`

	// Bio 个人简介
	Bio string `gorm:"column:bio;type:varchar(255);comment:个人简介"`

	// IsOnline 是否在线，连接建立置 true，断开置 false
	IsOnline bool `gorm:"column:is_online;not null;default:false;comment:是否在线"`

	// LastSeenAt 最后在线时间
	// 仅在转为离线时写入；在线期间此字段无意义
	LastSeenAt sql.NullTime `gorm:"column:last_seen_at;comment:最后在线时间"`

	// RawPassword 明文密码（不存入数据库）
	// 接收前端传来的明文密码，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前自动调用
// 将 RawPassword 明文密码加密后存入 Password 字段
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = "" // 清空明文，防止泄露
	}
	return nil
}

// CheckPassword 校验密码是否正确
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
