package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/cli"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
)

// 腳本化跑完整個選單迴圈：開戶 → 存款 → 提款 → 超額提款 → 查餘額 → 歷史 → 離開
func TestRunScriptedSession(t *testing.T) {
	t.Parallel()

	script := strings.Join([]string{
		"Alice",      // holder
		"First Bank", // bank
		"1", "100", "Salary",
		"2", "30", "Groceries",
		"2", "1000", "Rent",
		"3",
		"4",
		"5",
	}, "\n") + "\n"

	store := memory.NewMemoryLedger()
	var out bytes.Buffer
	ui := cli.New(store, strings.NewReader(script), &out)

	require.NoError(t, ui.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "New account created for Alice")
	assert.Contains(t, output, "Deposited: $100.00")
	assert.Contains(t, output, "Withdrawn: $30.00")
	assert.Contains(t, output, "Insufficient balance!")
	assert.Contains(t, output, "Current balance: $70.00")
	assert.Contains(t, output, "Transaction history for Alice")
	assert.Contains(t, output, "Balance Check")
	assert.Contains(t, output, "Thank you for using Bank Ledger!")

	// 失敗的提款不會出現在歷史，Withdrawal 只有一筆
	assert.Equal(t, 1, strings.Count(output, "Groceries"))
	assert.NotContains(t, output, "Rent")
}

func TestRunRejectsBadInput(t *testing.T) {
	t.Parallel()

	script := strings.Join([]string{
		"Alice",
		"First Bank",
		"1", "abc", // 非數字金額
		"9",    // 不存在的選項
		"exit", // 文字指令也能離開
	}, "\n") + "\n"

	store := memory.NewMemoryLedger()
	var out bytes.Buffer
	ui := cli.New(store, strings.NewReader(script), &out)

	require.NoError(t, ui.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Amount must be a positive number!")
	assert.Contains(t, output, "Invalid option. Please choose 1-5.")
}

// 輸入流提前結束 (EOF) 時不得 panic，正常返回
func TestRunHandlesEOF(t *testing.T) {
	t.Parallel()

	store := memory.NewMemoryLedger()
	var out bytes.Buffer
	ui := cli.New(store, strings.NewReader("Alice\nFirst Bank\n"), &out)

	assert.NoError(t, ui.Run(context.Background()))
}
