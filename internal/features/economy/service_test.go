package economy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// fakeStore keeps balances and a ledger in memory and mimics the
// repository's atomicity contract.
type fakeStore struct {
	balances map[string]int64
	ledger   []*Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{balances: make(map[string]int64)}
}

func (f *fakeStore) Credit(_ context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error {
	f.balances[userID] += amount
	f.ledger = append(f.ledger, &Transaction{UserID: userID, Type: txType, Amount: amount, Description: description, RelatedUserID: relatedUserID})
	return nil
}

func (f *fakeStore) Debit(_ context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error {
	if f.balances[userID] < amount {
		return common.ErrInsufficientFunds
	}
	f.balances[userID] -= amount
	f.ledger = append(f.ledger, &Transaction{UserID: userID, Type: txType, Amount: -amount, Description: description, RelatedUserID: relatedUserID})
	return nil
}

func (f *fakeStore) Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) error {
	if err := f.Debit(ctx, fromUserID, amount, TxTypeTransferSent, "transfer", &toUserID); err != nil {
		return err
	}
	return f.Credit(ctx, toUserID, amount, TxTypeTransferReceived, "transfer", &fromUserID)
}

func (f *fakeStore) History(_ context.Context, userID string, limit int, _ string) ([]*Transaction, error) {
	var out []*Transaction
	for i := len(f.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if f.ledger[i].UserID == userID {
			out = append(out, f.ledger[i])
		}
	}
	return out, nil
}

func (f *fakeStore) Leaderboard(context.Context, string, int) ([]*LeaderboardEntry, error) {
	return nil, nil
}

func TestCreditValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Credit(ctx, "u1", 0, TxTypeBonus, "", nil), common.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Credit(ctx, "u1", -10, TxTypeBonus, "", nil), common.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Credit(ctx, "u1", MaxTransactionAmount+1, TxTypeBonus, "", nil), common.ErrAmountTooLarge)
	assert.NoError(t, svc.Credit(ctx, "u1", MaxTransactionAmount, TxTypeBonus, "", nil))

	// The rejected calls must not have touched the store.
	assert.Equal(t, MaxTransactionAmount, store.balances["u1"])
	assert.Len(t, store.ledger, 1)
}

func TestDebitValidation(t *testing.T) {
	store := newFakeStore()
	store.balances["u1"] = 100
	svc := NewService(store)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Debit(ctx, "u1", 0, TxTypeWork, "", nil), common.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Debit(ctx, "u1", 101, TxTypeWork, "", nil), common.ErrInsufficientFunds)
	assert.NoError(t, svc.Debit(ctx, "u1", 100, TxTypeWork, "", nil))
	assert.Zero(t, store.balances["u1"])
}

func TestTransferRules(t *testing.T) {
	store := newFakeStore()
	store.balances["alice"] = 500
	svc := NewService(store)
	ctx := context.Background()

	tests := []struct {
		name   string
		from   string
		to     string
		amount int64
		want   error
	}{
		{"self transfer", "alice", "alice", 100, common.ErrSelfTransfer},
		{"zero amount", "alice", "bob", 0, common.ErrInvalidAmount},
		{"negative amount", "alice", "bob", -5, common.ErrInvalidAmount},
		{"over ceiling", "alice", "bob", MaxTransactionAmount + 1, common.ErrAmountTooLarge},
		{"insufficient", "alice", "bob", 501, common.ErrInsufficientFunds},
		{"ok", "alice", "bob", 300, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Transfer(ctx, tt.from, tt.to, tt.amount)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}

	// Money is conserved and both legs are ledgered.
	assert.Equal(t, int64(200), store.balances["alice"])
	assert.Equal(t, int64(300), store.balances["bob"])
	require.Len(t, store.ledger, 2)
	assert.Equal(t, int64(-300), store.ledger[0].Amount)
	assert.Equal(t, int64(300), store.ledger[1].Amount)
}

func TestAdminCreditBypassesCeiling(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.AdminCredit(ctx, "u1", MaxTransactionAmount*10, "event payout"))
	assert.Equal(t, MaxTransactionAmount*10, store.balances["u1"])

	// The ledger type is forced regardless of what the caller intended.
	require.Len(t, store.ledger, 1)
	assert.Equal(t, TxTypeAdminAdd, store.ledger[0].Type)

	assert.ErrorIs(t, svc.AdminCredit(ctx, "u1", 0, ""), common.ErrInvalidAmount)
}

func TestHistoryClampsLimit(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, svc.Credit(ctx, "u1", 10, TxTypeBonus, "", nil))
	}

	txs, err := svc.History(ctx, "u1", 0, "")
	require.NoError(t, err)
	assert.Len(t, txs, 10) // default

	txs, err = svc.History(ctx, "u1", 999, "")
	require.NoError(t, err)
	assert.Len(t, txs, 10) // out of range falls back to the default
}
