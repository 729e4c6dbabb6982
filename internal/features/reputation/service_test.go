package reputation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

type fakeStore struct {
	points map[string]int64
	grants int
}

func newFakeStore() *fakeStore {
	return &fakeStore{points: make(map[string]int64)}
}

func (f *fakeStore) Give(_ context.Context, _, toID string, delta int) (*Reputation, error) {
	f.points[toID] += int64(delta)
	f.grants++
	return &Reputation{UserID: toID, Points: f.points[toID]}, nil
}

func (f *fakeStore) Get(_ context.Context, userID string) (*Reputation, error) {
	return &Reputation{UserID: userID, Points: f.points[userID]}, nil
}

func (f *fakeStore) Top(context.Context, int) ([]*Reputation, error) {
	return nil, nil
}

func TestGiveValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Give(ctx, "u1", "u1", 1)
	assert.ErrorIs(t, err, common.ErrSelfReputation)

	_, err = svc.Give(ctx, "u1", "u2", 0)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.Give(ctx, "u1", "u2", 5)
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	// Rejected grants never reach the store.
	assert.Zero(t, store.grants)

	rep, err := svc.Give(ctx, "u1", "u2", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.Points)

	rep, err = svc.Give(ctx, "u3", "u2", -1)
	require.NoError(t, err)
	assert.Zero(t, rep.Points)
}
