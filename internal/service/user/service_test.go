package user

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skillhive_server/internal/dao/mysql/repository"
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/errorx"
	myjwt "skillhive_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	myjwt.Init("test-secret-at-least-32-characters!!", 15, 168)
	os.Exit(m.Run())
}

// ==================== 测试替身 ====================

type fakeUserRepo struct {
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := f.users[uuid]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) { return nil, nil }
func (f *fakeUserRepo) Create(user *model.UserInfo) error {
	// 模拟 BeforeSave Hook 的加密行为
	if user.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.RawPassword), bcrypt.MinCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
		user.RawPassword = ""
	}
	f.users[user.Uuid] = user
	return nil
}
func (f *fakeUserRepo) UpdateUserInfo(user *model.UserInfo) error { return nil }
func (f *fakeUserRepo) UpdateOnlineStatus(uuid string, online bool, lastSeenAt time.Time) error {
	return nil
}

func newTestService() (*userService, *fakeUserRepo) {
	userRepo := &fakeUserRepo{users: map[string]*model.UserInfo{}}
	repos := &repository.Repositories{User: userRepo}
	return NewUserService(repos, nil), userRepo
}

func mustRegister(t *testing.T, svc *userService, username, email string) string {
	t.Helper()
	rsp, err := svc.Register(request.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return rsp.Uuid
}

// ==================== 用例 ====================

func TestRegisterIssuesTokensAndHashesPassword(t *testing.T) {
	svc, userRepo := newTestService()

	rsp, err := svc.Register(request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(rsp.Uuid, "U"))
	require.NotEmpty(t, rsp.AccessToken)
	require.NotEmpty(t, rsp.RefreshToken)

	stored := userRepo.users[rsp.Uuid]
	require.NotNil(t, stored)
	// 明文不落库
	require.Empty(t, stored.RawPassword)
	require.NotEqual(t, "secret123", stored.Password)
	require.True(t, stored.CheckPassword("secret123"))
}

func TestRegisterRejectsDuplicateUsernameAndEmail(t *testing.T) {
	svc, _ := newTestService()
	mustRegister(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(request.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	require.Error(t, err)
	require.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))

	_, err = svc.Register(request.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "secret123",
	})
	require.Error(t, err)
	require.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	mustRegister(t, svc, "alice", "alice@example.com")

	rsp, err := svc.Login(request.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "alice", rsp.Username)
	require.NotEmpty(t, rsp.AccessToken)

	_, err = svc.Login(request.LoginRequest{Username: "alice", Password: "wrongpass"})
	require.Error(t, err)
	require.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))

	_, err = svc.Login(request.LoginRequest{Username: "nobody", Password: "secret123"})
	require.Error(t, err)
	require.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	svc, _ := newTestService()

	refreshToken, _, err := myjwt.GenerateRefreshToken("Ualice000001")
	require.NoError(t, err)

	accessToken, newRefreshToken, err := svc.RefreshToken(refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, newRefreshToken)
	require.NotEqual(t, refreshToken, newRefreshToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService()

	// 访问令牌没有 TokenID，不能用来刷新
	accessToken, err := myjwt.GenerateAccessToken("Ualice000001")
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(accessToken)
	require.Error(t, err)
	require.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.RefreshToken("not.a.jwt")
	require.Error(t, err)
	require.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestGetUserInfo(t *testing.T) {
	svc, userRepo := newTestService()
	uuid := mustRegister(t, svc, "alice", "alice@example.com")
	userRepo.users[uuid].Bio = "hello"

	rsp, err := svc.GetUserInfo(uuid)
	require.NoError(t, err)
	require.Equal(t, "alice", rsp.Username)
	require.Equal(t, "hello", rsp.Bio)

	_, err = svc.GetUserInfo("Unobody00009")
	require.Error(t, err)
	require.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}
