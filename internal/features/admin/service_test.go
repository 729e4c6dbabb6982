package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

type fakeStore struct {
	blacklist map[string]string
	settings  map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{blacklist: make(map[string]string), settings: make(map[string]string)}
}

func (f *fakeStore) BlacklistAdd(_ context.Context, userID, reason, _ string) error {
	f.blacklist[userID] = reason
	return nil
}

func (f *fakeStore) BlacklistRemove(_ context.Context, userID string) error {
	delete(f.blacklist, userID)
	return nil
}

func (f *fakeStore) IsBlacklisted(_ context.Context, userID string) (bool, error) {
	_, ok := f.blacklist[userID]
	return ok, nil
}

func (f *fakeStore) BlacklistAll(context.Context) ([]*BlacklistEntry, error) {
	var out []*BlacklistEntry
	for id, reason := range f.blacklist {
		out = append(out, &BlacklistEntry{UserID: id, Reason: reason})
	}
	return out, nil
}

func (f *fakeStore) SetSetting(_ context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

func (f *fakeStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	v, ok := f.settings[key]
	return v, ok, nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(store, nil, []string{"admin1", "admin2"}, string(hash))
}

func TestUnlock(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	assert.ErrorIs(t, svc.Unlock("stranger", "hunter2"), common.ErrNotAdmin)
	assert.ErrorIs(t, svc.Unlock("admin1", "wrong"), common.ErrWrongPassword)
	assert.NoError(t, svc.Unlock("admin1", "hunter2"))

	// The session belongs to the user who unlocked it.
	assert.NoError(t, svc.requireSession("admin1"))
	assert.ErrorIs(t, svc.requireSession("admin2"), common.ErrSessionExpired)
}

func TestSessionExpiry(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Unlock("admin1", "hunter2"))
	assert.NoError(t, svc.requireSession("admin1"))

	now = now.Add(SessionTTL + time.Second)
	assert.ErrorIs(t, svc.requireSession("admin1"), common.ErrSessionExpired)
}

func TestLock(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	require.NoError(t, svc.Unlock("admin1", "hunter2"))
	svc.Lock("admin1")
	assert.ErrorIs(t, svc.requireSession("admin1"), common.ErrSessionExpired)
}

func TestBlacklist(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	// Locked admins cannot blacklist.
	assert.ErrorIs(t, svc.Blacklist(ctx, "admin1", "u1", "spam"), common.ErrSessionExpired)

	require.NoError(t, svc.Unlock("admin1", "hunter2"))
	require.NoError(t, svc.Blacklist(ctx, "admin1", "u1", "spam"))

	blocked, err := svc.IsBlacklisted(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, blocked)

	// Admins cannot be blacklisted.
	assert.ErrorIs(t, svc.Blacklist(ctx, "admin1", "admin2", ""), common.ErrNotAdmin)

	require.NoError(t, svc.Unblacklist(ctx, "admin1", "u1"))
	blocked, err = svc.IsBlacklisted(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestMaintenanceMode(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	// Unset means off.
	on, err := svc.InMaintenance(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, svc.Unlock("admin1", "hunter2"))
	require.NoError(t, svc.SetMaintenance(ctx, "admin1", true))

	on, err = svc.InMaintenance(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, svc.SetMaintenance(ctx, "admin1", false))
	on, err = svc.InMaintenance(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}
