package repository

import (
	"skillhive_server/internal/model"

	"gorm.io/gorm"
)

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建关注关系 Repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Find 查找指定方向的关注边
func (r *followRepository) Find(userId, targetId string, relation int8) (*model.UserFollow, error) {
	var follow model.UserFollow
	if err := r.db.First(&follow, "user_id = ? AND target_id = ? AND relation = ?",
		userId, targetId, relation).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询关注关系 user=%s target=%s", userId, targetId)
	}
	return &follow, nil
}

// Create 创建关注边
func (r *followRepository) Create(follow *model.UserFollow) error {
	if err := r.db.Create(follow).Error; err != nil {
		return wrapDBError(err, "创建关注关系")
	}
	return nil
}

// Delete 删除关注边
// 取关是彻底移除而非状态标记，这里用硬删除
func (r *followRepository) Delete(userId, targetId string, relation int8) error {
	if err := r.db.Unscoped().
		Where("user_id = ? AND target_id = ? AND relation = ?", userId, targetId, relation).
		Delete(&model.UserFollow{}).Error; err != nil {
		return wrapDBErrorf(err, "删除关注关系 user=%s target=%s", userId, targetId)
	}
	return nil
}

// FindTargetIds 查找某方向的全部对端 uuid
func (r *followRepository) FindTargetIds(userId string, relation int8) ([]string, error) {
	var targetIds []string
	if err := r.db.Model(&model.UserFollow{}).
		Where("user_id = ? AND relation = ?", userId, relation).
		Pluck("target_id", &targetIds).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询关注列表 user=%s", userId)
	}
	return targetIds, nil
}

// FindPartnerIds 查找与我任一方向有关注关系的全部对端 uuid
// 两个方向的边都挂在 user_id 索引上，一次查询即可取并集
func (r *followRepository) FindPartnerIds(userId string) ([]string, error) {
	var partnerIds []string
	if err := r.db.Model(&model.UserFollow{}).
		Distinct("target_id").
		Where("user_id = ?", userId).
		Pluck("target_id", &partnerIds).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询关注关系对端 user=%s", userId)
	}
	return partnerIds, nil
}
