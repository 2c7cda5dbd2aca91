package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillhive_server/internal/dao/mysql/repository"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/errorx"
)

type statusCall struct {
	uuid       string
	online     bool
	lastSeenAt time.Time
}

type fakeUserRepo struct {
	calls []statusCall
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) { return nil, nil }
func (f *fakeUserRepo) Create(user *model.UserInfo) error                    { return nil }
func (f *fakeUserRepo) UpdateUserInfo(user *model.UserInfo) error            { return nil }
func (f *fakeUserRepo) UpdateOnlineStatus(uuid string, online bool, lastSeenAt time.Time) error {
	f.calls = append(f.calls, statusCall{uuid: uuid, online: online, lastSeenAt: lastSeenAt})
	return nil
}

// fakeCache 只实现在线集合相关的操作，SubmitTask 同步执行便于断言
type fakeCache struct {
	sets map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{sets: map[string]map[string]struct{}{}}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (f *fakeCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (f *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.New(errorx.CodeNotFound, "not found")
}
func (f *fakeCache) Delete(ctx context.Context, key string) error                    { return nil }
func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error       { return nil }
func (f *fakeCache) DeleteByPatterns(ctx context.Context, patterns []string) error   { return nil }
func (f *fakeCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	if f.sets[key] == nil {
		f.sets[key] = map[string]struct{}{}
	}
	for _, m := range members {
		f.sets[key][m.(string)] = struct{}{}
	}
	return nil
}
func (f *fakeCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	var members []string
	for m := range f.sets[key] {
		members = append(members, m)
	}
	return members, nil
}
func (f *fakeCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	for _, m := range members {
		delete(f.sets[key], m.(string))
	}
	return nil
}
func (f *fakeCache) SubmitTask(action func()) { action() }

func TestOnlineSetsStatusWithoutLastSeen(t *testing.T) {
	userRepo := &fakeUserRepo{}
	svc := NewPresenceService(&repository.Repositories{User: userRepo}, nil)

	svc.Online("Ualice000001")

	require.Len(t, userRepo.calls, 1)
	require.Equal(t, "Ualice000001", userRepo.calls[0].uuid)
	require.True(t, userRepo.calls[0].online)
	// 在线期间 last_seen_at 无意义，不写入
	require.True(t, userRepo.calls[0].lastSeenAt.IsZero())
}

func TestOfflineRecordsLastSeen(t *testing.T) {
	userRepo := &fakeUserRepo{}
	svc := NewPresenceService(&repository.Repositories{User: userRepo}, nil)

	before := time.Now()
	svc.Offline("Ualice000001")

	require.Len(t, userRepo.calls, 1)
	require.False(t, userRepo.calls[0].online)
	require.False(t, userRepo.calls[0].lastSeenAt.Before(before))
}

func TestBlankUserIdDropped(t *testing.T) {
	userRepo := &fakeUserRepo{}
	svc := NewPresenceService(&repository.Repositories{User: userRepo}, nil)

	svc.Online("")
	svc.Offline("")

	require.Empty(t, userRepo.calls)
}

func TestOnlineSetMirrorsStatus(t *testing.T) {
	userRepo := &fakeUserRepo{}
	cache := newFakeCache()
	svc := NewPresenceService(&repository.Repositories{User: userRepo}, cache)

	svc.Online("Ualice000001")
	svc.Online("Ubob00000002")

	users, err := svc.GetOnlineUsers()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Ualice000001", "Ubob00000002"}, users)

	svc.Offline("Ualice000001")
	users, err = svc.GetOnlineUsers()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Ubob00000002"}, users)
}
