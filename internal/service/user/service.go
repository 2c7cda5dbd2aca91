// Package user 实现用户业务逻辑
// 注册、登录、令牌刷新和用户信息查询
package user

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"skillhive_server/internal/dao/mysql/repository"
	myredis "skillhive_server/internal/dao/redis"
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/dto/respond"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/constants"
	"skillhive_server/pkg/errorx"
	myjwt "skillhive_server/pkg/util/jwt"
	"skillhive_server/pkg/util/random"
)

var ctx = context.Background()

// userService 用户业务逻辑实现
type userService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService 构造函数
func NewUserService(repos *repository.Repositories, cache myredis.AsyncCacheService) *userService {
	return &userService{repos: repos, cache: cache}
}

// tokenCacheKey 刷新令牌 ID 的缓存 key
// 单会话策略：每个用户只保留最新一个刷新令牌 ID，
// 新登录 / 刷新会使旧的刷新令牌失效
func tokenCacheKey(uuid string) string {
	return "user_token:" + uuid
}

// infoCacheKey 用户信息缓存 key
func infoCacheKey(uuid string) string {
	return "user_info_" + uuid
}

// issueTokens 签发令牌对并登记刷新令牌 ID
// redis 写失败只记日志：登记失败的代价是刷新时被拒，重新登录即可
func (s *userService) issueTokens(uuid string) (accessToken, refreshToken string, err error) {
	accessToken, err = myjwt.GenerateAccessToken(uuid)
	if err != nil {
		zap.L().Error("生成访问令牌失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	refreshToken, tokenId, err := myjwt.GenerateRefreshToken(uuid)
	if err != nil {
		zap.L().Error("生成刷新令牌失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}
	if s.cache != nil {
		expiry := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
		if err := s.cache.Set(ctx, tokenCacheKey(uuid), tokenId, expiry); err != nil {
			zap.L().Error("登记刷新令牌失败", zap.Error(err))
		}
	}
	return accessToken, refreshToken, nil
}

// invalidateInfoCache 异步失效用户信息缓存
func (s *userService) invalidateInfoCache(uuid string) {
	if s.cache == nil {
		return
	}
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(ctx, infoCacheKey(uuid)); err != nil {
			zap.L().Error("删除用户信息缓存失败", zap.Error(err))
		}
	})
}

// Register 用户注册
// 用户名和邮箱都不能重复；注册成功直接签发令牌
func (s *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := s.repos.User.FindByUsername(req.Username); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if _, err := s.repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "邮箱已被注册")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	newUser := model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Username:    req.Username,
		Email:       req.Email,
		RawPassword: req.Password, // BeforeSave Hook 中加密
	}
	if err := s.repos.User.Create(&newUser); err != nil {
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := s.issueTokens(newUser.Uuid)
	if err != nil {
		return nil, err
	}

	return &respond.RegisterRespond{
		Uuid:         newUser.Uuid,
		Username:     newUser.Username,
		Email:        newUser.Email,
		AvatarUrl:    newUser.AvatarUrl,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 密码登录
func (s *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	loginUser, err := s.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !loginUser.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}

	accessToken, refreshToken, err := s.issueTokens(loginUser.Uuid)
	if err != nil {
		return nil, err
	}

	return &respond.LoginRespond{
		Uuid:         loginUser.Uuid,
		Username:     loginUser.Username,
		Email:        loginUser.Email,
		AvatarUrl:    loginUser.AvatarUrl,
		Bio:          loginUser.Bio,
		CreatedAt:    loginUser.CreatedAt.Format("2006-01-02 15:04:05"),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 用刷新令牌换新的令牌对
// 令牌 ID 必须与 redis 中登记的一致（单会话），刷新成功后轮换刷新令牌
func (s *userService) RefreshToken(refreshToken string) (accessToken, newRefreshToken string, err error) {
	claims, err := myjwt.ParseToken(refreshToken)
	if err != nil || claims.TokenID == "" {
		return "", "", errorx.New(errorx.CodeUnauthorized, "刷新令牌无效")
	}

	if s.cache != nil {
		storedTokenId, err := s.cache.GetOrError(ctx, tokenCacheKey(claims.UserID))
		if err != nil {
			if errorx.IsNotFound(err) {
				return "", "", errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效，请重新登录")
			}
			zap.L().Error("读取刷新令牌失败", zap.Error(err))
			return "", "", errorx.ErrServerBusy
		}
		if storedTokenId != claims.TokenID {
			return "", "", errorx.New(errorx.CodeUnauthorized, "刷新令牌已被新会话取代")
		}
	}

	return s.issueTokens(claims.UserID)
}

// Logout 退出登录
// 删除登记的刷新令牌 ID，已签发的刷新令牌立即失效
func (s *userService) Logout(userId string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, tokenCacheKey(userId)); err != nil {
		zap.L().Error("吊销刷新令牌失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// GetUserInfo 获取用户公开信息
// 缓存优先，未命中查库后异步回填
func (s *userService) GetUserInfo(uuid string) (*respond.UserInfoRespond, error) {
	cacheKey := infoCacheKey(uuid)
	if s.cache != nil {
		rspString, err := s.cache.GetOrError(ctx, cacheKey)
		if err == nil {
			var rsp respond.UserInfoRespond
			if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
				return &rsp, nil
			}
			zap.L().Error("解析用户信息缓存失败", zap.Error(err))
		} else if !errorx.IsNotFound(err) {
			zap.L().Error("读取用户信息缓存失败", zap.Error(err))
		}
	}

	userInfo, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := respond.UserInfoRespond{
		Uuid:      userInfo.Uuid,
		Username:  userInfo.Username,
		Email:     userInfo.Email,
		AvatarUrl: userInfo.AvatarUrl,
		Bio:       userInfo.Bio,
		IsOnline:  userInfo.IsOnline,
	}
	if userInfo.LastSeenAt.Valid {
		rsp.LastSeenAt = userInfo.LastSeenAt.Time.Format("2006-01-02 15:04:05")
	}

	if s.cache != nil {
		s.cache.SubmitTask(func() {
			jsonBytes, err := json.Marshal(rsp)
			if err != nil {
				return
			}
			if err := s.cache.Set(ctx, cacheKey, string(jsonBytes),
				time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
				zap.L().Error("写入用户信息缓存失败", zap.Error(err))
			}
		})
	}

	return &rsp, nil
}
