package domain

import "github.com/google/uuid"

// amount 使用 int64，並定義精度：小數點後 2 位（以「分」為最小單位）
const (
	CurrencyScale = 100
)

// Action 交易動作
// 封閉集合，資料庫層也會以 CHECK 約束再擋一次
type Action string

const (
	// 存款
	ActionDeposit Action = "Deposit"
	// 提款
	ActionWithdrawal Action = "Withdrawal"
	// 查詢餘額（查詢本身也是一筆稽核紀錄）
	ActionBalanceCheck Action = "Balance Check"
)

// Valid 回報 action 是否屬於封閉集合
func (a Action) Valid() bool {
	switch a {
	case ActionDeposit, ActionWithdrawal, ActionBalanceCheck:
		return true
	}
	return false
}

// Transaction 交易紀錄：一經寫入即不可變
type Transaction struct {
	// ID: 由儲存層遞增分配
	ID int64
	// AccountID: 所屬帳戶 ID
	AccountID int64
	// RefID: 外部追蹤號 (UUID)，重放時用來去重
	RefID uuid.UUID
	// Action: 交易動作
	Action Action
	// Amount: 金額；ActionBalanceCheck 時為 nil
	Amount *int64
	// SourceOrReason: 存款來源或提款原因；ActionBalanceCheck 時為 nil
	SourceOrReason *string
	// BalanceAfter: 此筆交易完成後的帳戶餘額快照
	BalanceAfter int64
	// CreatedAt: 交易時間 (unix milli)
	CreatedAt int64
}
