// Package model 定义数据库实体模型
// 本文件定义关注关系模型
package model

import (
	"gorm.io/gorm"
)

// UserFollow 关注关系模型
// 对应数据库 user_follow 表
// 一次关注写入两条对称的边：A 视角的"我关注的"和 B 视角的"关注我的"，
// 两条边在同一事务内一起增删，保证任意一侧查询都走 user_id 索引
type UserFollow struct {
	gorm.Model
	UserId   string `gorm:"column:user_id;index;type:char(20);not null;comment:本方用户uuid"`
	TargetId string `gorm:"column:target_id;type:char(20);not null;comment:对方用户uuid"`
	Relation int8   `gorm:"column:relation;not null;comment:关系方向，1.我关注对方，2.对方关注我"`
}

func (UserFollow) TableName() string {
	return "user_follow"
}

// 关系方向取值
const (
	RelationFollowing int8 = 1 // user_id 关注 target_id
	RelationFollower  int8 = 2 // target_id 关注 user_id
)
