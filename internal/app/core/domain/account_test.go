package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

func TestAccountDeposit(t *testing.T) {
	t.Parallel()

	t.Run("positive amount increases balance", func(t *testing.T) {
		acct := domain.NewAccount(1, "Alice", "First Bank", 0)
		require.NoError(t, acct.Deposit(10000))
		assert.Equal(t, int64(10000), acct.Balance)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		acct := domain.NewAccount(1, "Alice", "First Bank", 0)
		assert.ErrorIs(t, acct.Deposit(0), domain.ErrInvalidAmount)
		assert.Equal(t, int64(0), acct.Balance)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		acct := domain.NewAccount(1, "Alice", "First Bank", 0)
		assert.ErrorIs(t, acct.Deposit(-500), domain.ErrInvalidAmount)
		assert.Equal(t, int64(0), acct.Balance)
	})
}

func TestAccountWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("amount within balance", func(t *testing.T) {
		acct := domain.NewAccount(1, "Alice", "First Bank", 0)
		require.NoError(t, acct.Deposit(10000))
		require.NoError(t, acct.Withdraw(3000))
		assert.Equal(t, int64(7000), acct.Balance)
	})

	t.Run("amount beyond balance leaves state unchanged", func(t *testing.T) {
		acct := domain.NewAccount(1, "Alice", "First Bank", 0)
		require.NoError(t, acct.Deposit(7000))
		assert.ErrorIs(t, acct.Withdraw(100000), domain.ErrInsufficientFunds)
		assert.Equal(t, int64(7000), acct.Balance)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		acct := domain.NewAccount(1, "Alice", "First Bank", 0)
		assert.ErrorIs(t, acct.Withdraw(0), domain.ErrInvalidAmount)
		assert.ErrorIs(t, acct.Withdraw(-1), domain.ErrInvalidAmount)
	})
}

func TestActionValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.ActionDeposit.Valid())
	assert.True(t, domain.ActionWithdrawal.Valid())
	assert.True(t, domain.ActionBalanceCheck.Valid())
	assert.False(t, domain.Action("Transfer").Valid())
	assert.False(t, domain.Action("").Valid())
}
