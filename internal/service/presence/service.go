// Package presence 实现在线状态业务逻辑
// 由 WebSocket 连接生命周期驱动：连接建立置在线，断开置离线并记录最后在线时间
// 除数据库状态外同时维护 Redis 在线集合，供多实例部署时跨实例查询
package presence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"skillhive_server/internal/dao/mysql/repository"
	myredis "skillhive_server/internal/dao/redis"
)

var ctx = context.Background()

// onlineSetKey 在线用户集合的缓存 key
const onlineSetKey = "online_users"

type presenceService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewPresenceService 构造函数
func NewPresenceService(repos *repository.Repositories, cache myredis.AsyncCacheService) *presenceService {
	return &presenceService{repos: repos, cache: cache}
}

// Online 用户上线
// last_seen_at 只在离线时有意义，上线不更新
func (s *presenceService) Online(userId string) {
	if userId == "" {
		zap.L().Warn("上线事件缺少用户ID，丢弃")
		return
	}
	if err := s.repos.User.UpdateOnlineStatus(userId, true, time.Time{}); err != nil {
		zap.L().Error("更新在线状态失败", zap.Error(err), zap.String("user", userId))
		return
	}
	s.updateOnlineSet(userId, true)
	zap.L().Info("用户上线", zap.String("user", userId))
}

// Offline 用户离线，记录最后在线时间
func (s *presenceService) Offline(userId string) {
	if userId == "" {
		zap.L().Warn("离线事件缺少用户ID，丢弃")
		return
	}
	if err := s.repos.User.UpdateOnlineStatus(userId, false, time.Now()); err != nil {
		zap.L().Error("更新离线状态失败", zap.Error(err), zap.String("user", userId))
		return
	}
	s.updateOnlineSet(userId, false)
	zap.L().Info("用户离线", zap.String("user", userId))
}

// GetOnlineUsers 获取当前在线用户集合
func (s *presenceService) GetOnlineUsers() ([]string, error) {
	if s.cache == nil {
		return nil, nil
	}
	return s.cache.GetSetMembers(ctx, onlineSetKey)
}

// updateOnlineSet 异步维护 Redis 在线集合
// 集合只是数据库状态的镜像，写失败只记日志
func (s *presenceService) updateOnlineSet(userId string, online bool) {
	if s.cache == nil {
		return
	}
	s.cache.SubmitTask(func() {
		var err error
		if online {
			err = s.cache.AddToSet(ctx, onlineSetKey, userId)
		} else {
			err = s.cache.RemoveFromSet(ctx, onlineSetKey, userId)
		}
		if err != nil {
			zap.L().Error("维护在线集合失败", zap.Error(err), zap.String("user", userId))
		}
	})
}
