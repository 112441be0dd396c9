package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

// MemoryLedger 是使用 Mutex 保護的純記憶體帳本
// 程序結束後狀態即消失，僅供測試與最初版行為
//
// 結構:
//
//	accounts: 帳戶資料 Map (ID → Account)
//	byHolder: holder 名稱 → 帳戶 ID，維持名稱唯一
//	transactions: 各帳戶的交易紀錄（追加序 = ID 序）
type MemoryLedger struct {
	mu           sync.RWMutex
	accounts     map[int64]*domain.Account
	byHolder     map[string]int64
	transactions map[int64][]domain.Transaction

	nextAccountID     int64
	nextTransactionID int64
}

// NewMemoryLedger 建立一個空的 MemoryLedger 實例
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		accounts:     make(map[int64]*domain.Account),
		byHolder:     make(map[string]int64),
		transactions: make(map[int64][]domain.Transaction),
	}
}

// FindOrCreateAccount 依 holder 查找帳戶，不存在則建立
func (m *MemoryLedger) FindOrCreateAccount(ctx context.Context, holder, bankName string) (*domain.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byHolder[holder]; ok {
		cp := *m.accounts[id]
		return &cp, false, nil
	}

	m.nextAccountID++
	acct := domain.NewAccount(m.nextAccountID, holder, bankName, time.Now().UnixMilli())
	m.accounts[acct.ID] = acct
	m.byHolder[holder] = acct.ID

	cp := *acct
	return &cp, true, nil
}

// RecordDeposit 存款並追加交易紀錄
func (m *MemoryLedger) RecordDeposit(ctx context.Context, accountID int64, amount int64, source string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if err := acct.Deposit(amount); err != nil {
		return 0, err
	}
	m.appendTransaction(acct, domain.ActionDeposit, &amount, &source)
	return acct.Balance, nil
}

// RecordWithdrawal 提款並追加交易紀錄
// 餘額不足時整筆拒絕（最初版漏掉這個檢查，是缺陷而非功能）
func (m *MemoryLedger) RecordWithdrawal(ctx context.Context, accountID int64, amount int64, reason string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if err := acct.Withdraw(amount); err != nil {
		return 0, err
	}
	m.appendTransaction(acct, domain.ActionWithdrawal, &amount, &reason)
	return acct.Balance, nil
}

// RecordBalanceCheck 讀取餘額並留下一筆稽核紀錄
func (m *MemoryLedger) RecordBalanceCheck(ctx context.Context, accountID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	m.appendTransaction(acct, domain.ActionBalanceCheck, nil, nil)
	return acct.Balance, nil
}

// ListTransactions 回傳交易紀錄，最新在前
func (m *MemoryLedger) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.accounts[accountID]; !ok {
		return nil, domain.ErrAccountNotFound
	}

	history := m.transactions[accountID]
	result := make([]domain.Transaction, len(history))
	copy(result, history)
	// 追加序即 ID 升冪，反排後日期與 ID 皆為降冪
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt > result[j].CreatedAt
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// DeleteAccount 刪除帳戶與其所有交易紀錄
func (m *MemoryLedger) DeleteAccount(ctx context.Context, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, accountID)
	delete(m.byHolder, acct.Holder)
	delete(m.transactions, accountID)
	return nil
}

// appendTransaction 追加一筆交易紀錄，呼叫端必須已持有寫鎖
func (m *MemoryLedger) appendTransaction(acct *domain.Account, action domain.Action, amount *int64, sourceOrReason *string) {
	m.nextTransactionID++
	m.transactions[acct.ID] = append(m.transactions[acct.ID], domain.Transaction{
		ID:             m.nextTransactionID,
		AccountID:      acct.ID,
		RefID:          uuid.New(),
		Action:         action,
		Amount:         amount,
		SourceOrReason: sourceOrReason,
		BalanceAfter:   acct.Balance,
		CreatedAt:      time.Now().UnixMilli(),
	})
}

var _ usecase.LedgerStore = (*MemoryLedger)(nil)
