package repository

import (
	"time"

	"skillhive_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 按 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByUsername 按用户名查找用户
func (r *userRepository) FindByUsername(username string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 username=%s", username)
	}
	return &user, nil
}

// FindByEmail 按邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindByUuids 按 UUID 列表查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if len(uuids) == 0 {
		return users, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// Create 创建用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// UpdateUserInfo 更新用户信息
func (r *userRepository) UpdateUserInfo(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBError(err, "更新用户信息")
	}
	return nil
}

// UpdateOnlineStatus 更新在线状态
// 上线只翻转 is_online；下线同时写入 last_seen_at
func (r *userRepository) UpdateOnlineStatus(uuid string, online bool, lastSeenAt time.Time) error {
	updates := map[string]interface{}{"is_online": online}
	if !online {
		updates["last_seen_at"] = lastSeenAt
	}
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).Updates(updates).Error; err != nil {
		return wrapDBErrorf(err, "更新用户在线状态 uuid=%s", uuid)
	}
	return nil
}
