// Package relationship 实现关注关系业务逻辑
// 一次关注写入两条对称边（关注边 + 粉丝边），保证两个方向都能走索引查询
package relationship

import (
	"go.uber.org/zap"

	"skillhive_server/internal/dao/mysql/repository"
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/dto/respond"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/errorx"
)

// FollowNotifier 关注通知接口
// 由 NotificationService 实现并注入，关系层不理解通知语义
type FollowNotifier interface {
	NotifyFollow(actorId, recipientId string) error
}

// relationshipService 关注关系业务逻辑实现
type relationshipService struct {
	repos    *repository.Repositories
	notifier FollowNotifier
}

// NewRelationshipService 构造函数
func NewRelationshipService(repos *repository.Repositories, notifier FollowNotifier) *relationshipService {
	return &relationshipService{repos: repos, notifier: notifier}
}

// Follow 关注
// 1. 不能关注自己，目标必须存在，重复关注幂等
// 2. 两条对称边在同一事务里写入
// 3. 事务提交后才生成通知，通知失败不回滚关注
func (s *relationshipService) Follow(req request.FollowRequest) error {
	if req.UserId == req.TargetId {
		return errorx.New(errorx.CodeInvalidParam, "不能关注自己")
	}
	if _, err := s.repos.User.FindByUuid(req.TargetId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "目标用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if _, err := s.repos.Follow.Find(req.UserId, req.TargetId, model.RelationFollowing); err == nil {
		// 已关注，幂等返回
		return nil
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Follow.Create(&model.UserFollow{
			UserId:   req.UserId,
			TargetId: req.TargetId,
			Relation: model.RelationFollowing,
		}); err != nil {
			return err
		}
		return tx.Follow.Create(&model.UserFollow{
			UserId:   req.TargetId,
			TargetId: req.UserId,
			Relation: model.RelationFollower,
		})
	})
	if err != nil {
		zap.L().Error("写入关注关系失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyFollow(req.UserId, req.TargetId); err != nil {
			zap.L().Error("生成关注通知失败", zap.Error(err))
		}
	}
	return nil
}

// Unfollow 取关
// 两条对称边在同一事务里删除，未关注时幂等返回
func (s *relationshipService) Unfollow(req request.FollowRequest) error {
	if req.UserId == req.TargetId {
		return errorx.New(errorx.CodeInvalidParam, "非法的取关目标")
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Follow.Delete(req.UserId, req.TargetId, model.RelationFollowing); err != nil {
			return err
		}
		return tx.Follow.Delete(req.TargetId, req.UserId, model.RelationFollower)
	})
	if err != nil {
		zap.L().Error("删除关注关系失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// listUsers 按关系方向查用户列表
func (s *relationshipService) listUsers(userId string, relation int8) ([]respond.UserInfoRespond, error) {
	targetIds, err := s.repos.Follow.FindTargetIds(userId, relation)
	if err != nil {
		zap.L().Error("查询关注关系失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	users, err := s.repos.User.FindByUuids(targetIds)
	if err != nil {
		zap.L().Error("批量查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.UserInfoRespond, 0, len(users))
	for i := range users {
		user := &users[i]
		rsp := respond.UserInfoRespond{
			Uuid:      user.Uuid,
			Username:  user.Username,
			Email:     user.Email,
			AvatarUrl: user.AvatarUrl,
			Bio:       user.Bio,
			IsOnline:  user.IsOnline,
		}
		if user.LastSeenAt.Valid {
			rsp.LastSeenAt = user.LastSeenAt.Time.Format("2006-01-02 15:04:05")
		}
		rspList = append(rspList, rsp)
	}
	return rspList, nil
}

// GetFollowingList 获取我关注的用户列表
func (s *relationshipService) GetFollowingList(userId string) ([]respond.UserInfoRespond, error) {
	return s.listUsers(userId, model.RelationFollowing)
}

// GetFollowerList 获取关注我的用户列表
func (s *relationshipService) GetFollowerList(userId string) ([]respond.UserInfoRespond, error) {
	return s.listUsers(userId, model.RelationFollower)
}
