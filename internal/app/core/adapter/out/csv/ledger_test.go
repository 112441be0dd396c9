package csv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csv_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/csv"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

func openLedger(t *testing.T, dir string) *csv_adapter.CSVLedger {
	t.Helper()
	ledger, err := csv_adapter.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ledger := openLedger(t, t.TempDir())

	acct, created, err := ledger.FindOrCreateAccount(ctx, "Alice", "First Bank")
	require.NoError(t, err)
	assert.True(t, created)

	balance, err := ledger.RecordDeposit(ctx, acct.ID, 10000, "Salary")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), balance)

	balance, err = ledger.RecordWithdrawal(ctx, acct.ID, 3000, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, int64(7000), balance)

	_, err = ledger.RecordWithdrawal(ctx, acct.ID, 100000, "Rent")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balance, err = ledger.RecordBalanceCheck(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), balance)

	history, err := ledger.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.ActionBalanceCheck, history[0].Action)
	assert.Nil(t, history[0].Amount)
	assert.Equal(t, domain.ActionWithdrawal, history[1].Action)
	assert.Equal(t, domain.ActionDeposit, history[2].Action)
}

// 重新開啟後狀態必須完整重建：餘額、歷史、ID 水位
func TestReopenRecoversState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	ledger, err := csv_adapter.Open(dir)
	require.NoError(t, err)

	acct, _, err := ledger.FindOrCreateAccount(ctx, "Alice", "First Bank")
	require.NoError(t, err)
	_, err = ledger.RecordDeposit(ctx, acct.ID, 10000, "Salary")
	require.NoError(t, err)
	_, err = ledger.RecordWithdrawal(ctx, acct.ID, 3000, "Groceries")
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	reopened := openLedger(t, dir)
	again, created, err := reopened.FindOrCreateAccount(ctx, "Alice", "First Bank")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, acct.ID, again.ID)
	assert.Equal(t, int64(7000), again.Balance, "balance must match what the log implies")

	history, err := reopened.ListTransactions(ctx, again.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ActionWithdrawal, history[0].Action)
	assert.Equal(t, int64(7000), history[0].BalanceAfter)

	// ID 水位恢復：新交易不會與舊紀錄撞號
	_, err = reopened.RecordDeposit(ctx, again.ID, 100, "Salary")
	require.NoError(t, err)
	history, err = reopened.ListTransactions(ctx, again.ID)
	require.NoError(t, err)
	assert.Greater(t, history[0].ID, history[1].ID)
}

// 刪除帳戶後重新開啟，其交易紀錄不得復活
func TestDeleteSurvivesReplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	ledger, err := csv_adapter.Open(dir)
	require.NoError(t, err)

	acct, _, err := ledger.FindOrCreateAccount(ctx, "Alice", "First Bank")
	require.NoError(t, err)
	keep, _, err := ledger.FindOrCreateAccount(ctx, "Bob", "First Bank")
	require.NoError(t, err)
	_, err = ledger.RecordDeposit(ctx, acct.ID, 100, "Salary")
	require.NoError(t, err)
	_, err = ledger.RecordDeposit(ctx, keep.ID, 200, "Salary")
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteAccount(ctx, acct.ID))
	require.NoError(t, ledger.Close())

	reopened := openLedger(t, dir)
	_, err = reopened.ListTransactions(ctx, acct.ID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	// 未刪除的帳戶完好
	history, err := reopened.ListTransactions(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	// 同名重建是全新帳戶，舊交易不會掛回來
	recreated, created, err := reopened.FindOrCreateAccount(ctx, "Alice", "First Bank")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, acct.ID, recreated.ID)
	assert.Equal(t, int64(0), recreated.Balance)
}

func TestValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ledger := openLedger(t, t.TempDir())
	acct, _, err := ledger.FindOrCreateAccount(ctx, "Alice", "First Bank")
	require.NoError(t, err)

	_, err = ledger.RecordDeposit(ctx, acct.ID, 0, "Salary")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = ledger.RecordWithdrawal(ctx, acct.ID, 500, "Bills")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_, err = ledger.RecordDeposit(ctx, 42, 100, "Salary")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	history, err := ledger.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOpenRejectsCorruptJournal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, writeFile(filepath.Join(dir, "transactions.csv"), "not,a,valid,transaction\n"))

	_, err := csv_adapter.Open(dir)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
