package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingDefaultsToPlanMax(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 3)
	ledger := NewAttemptLedger(db)

	remaining, err := ledger.Remaining(fx.sub.ID, fx.exam.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestEnsureCreatesWithMax(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 3)
	ledger := NewAttemptLedger(db)

	attempt, err := ledger.Ensure(db, fx.sub.ID, fx.exam.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, attempt.RemainingAttempts)
}

func TestEnsureTopsUpButNeverShrinks(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	ledger := NewAttemptLedger(db)

	attempt, err := ledger.Ensure(db, fx.sub.ID, fx.exam.ID, 2)
	require.NoError(t, err)
	require.NoError(t, ledger.ConsumeOne(db, attempt))
	assert.Equal(t, 1, attempt.RemainingAttempts)

	// Plan now allows 5: topped up to match.
	attempt, err = ledger.Ensure(db, fx.sub.ID, fx.exam.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, attempt.RemainingAttempts)

	// Plan downgraded to 1: granted attempts are kept.
	attempt, err = ledger.Ensure(db, fx.sub.ID, fx.exam.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, attempt.RemainingAttempts)
}

func TestAllocateSeedsMaxMinusOne(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	ledger := NewAttemptLedger(db)

	attempt, err := ledger.Allocate(db, fx.sub.ID, fx.exam.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.RemainingAttempts)

	// Idempotent: a second allocate hands back the existing row.
	again, err := ledger.Allocate(db, fx.sub.ID, fx.exam.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, again.ID)
	assert.Equal(t, 1, again.RemainingAttempts)
}

func TestConsumeOneFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 1)
	ledger := NewAttemptLedger(db)

	attempt, err := ledger.Ensure(db, fx.sub.ID, fx.exam.ID, 1)
	require.NoError(t, err)

	require.NoError(t, ledger.ConsumeOne(db, attempt))
	assert.Equal(t, 0, attempt.RemainingAttempts)

	err = ledger.ConsumeOne(db, attempt)
	assert.ErrorIs(t, err, ErrNoAttemptsLeft)

	stored, err := ledger.Get(fx.sub.ID, fx.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.RemainingAttempts)
}
