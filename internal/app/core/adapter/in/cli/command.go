package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// Command 使用者指令
// 字串輸入只在這裡解析一次，儲存層永遠只看到型別化的操作
type Command int

const (
	CommandUnknown Command = iota
	CommandDeposit
	CommandWithdraw
	CommandBalance
	CommandHistory
	CommandExit
)

// ParseCommand 解析選單輸入，接受數字或指令名稱
func ParseCommand(input string) Command {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "deposit":
		return CommandDeposit
	case "2", "withdraw":
		return CommandWithdraw
	case "3", "balance":
		return CommandBalance
	case "4", "history":
		return CommandHistory
	case "5", "exit", "quit":
		return CommandExit
	}
	return CommandUnknown
}

// ParseAmount 將使用者輸入的金額（元）轉為最小貨幣單位（分）
// 非數字或非正數一律回傳 domain.ErrInvalidAmount
func ParseAmount(input string) (int64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, domain.ErrInvalidAmount
	}
	amount := int64(math.Round(value * domain.CurrencyScale))
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return amount, nil
}

// FormatAmount 將最小貨幣單位格式化為元
func FormatAmount(amount int64) string {
	return fmt.Sprintf("%.2f", float64(amount)/domain.CurrencyScale)
}
