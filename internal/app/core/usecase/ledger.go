package usecase

import (
	"context"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// LedgerStore 是帳本儲存層的介面
// 每個 Record* 操作（更新餘額 + 追加交易紀錄）必須是單一原子單位
type LedgerStore interface {
	// FindOrCreateAccount 依 holder 名稱查找帳戶，不存在則建立（餘額 0）
	// created 回報這次呼叫是否建立了新帳戶
	FindOrCreateAccount(ctx context.Context, holder, bankName string) (acct *domain.Account, created bool, err error)
	// RecordDeposit 存款並追加交易紀錄，回傳新餘額
	RecordDeposit(ctx context.Context, accountID int64, amount int64, source string) (int64, error)
	// RecordWithdrawal 提款並追加交易紀錄，回傳新餘額
	RecordWithdrawal(ctx context.Context, accountID int64, amount int64, reason string) (int64, error)
	// RecordBalanceCheck 重新讀取權威餘額，並追加一筆稽核紀錄
	RecordBalanceCheck(ctx context.Context, accountID int64) (int64, error)
	// ListTransactions 回傳帳戶所有交易，最新在前；沒有紀錄時回傳空 slice
	ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	// DeleteAccount 刪除帳戶，其所有交易紀錄一併級聯刪除
	DeleteAccount(ctx context.Context, accountID int64) error
}
