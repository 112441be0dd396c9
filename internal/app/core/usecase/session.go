package usecase

import (
	"context"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
)

// Session 是綁定單一帳戶的操作門面
// 只做輸入轉發與餘額快取更新，不含業務邏輯
// balance 是快取值，未刷新前可能過期；權威值永遠在 LedgerStore
type Session struct {
	store     LedgerStore
	accountID int64
	holder    string
	bankName  string
	balance   int64
}

// OpenSession 查找或建立帳戶，並綁定一個 Session
// created 回報帳戶是否為這次建立
func OpenSession(ctx context.Context, store LedgerStore, holder, bankName string) (*Session, bool, error) {
	acct, created, err := store.FindOrCreateAccount(ctx, holder, bankName)
	if err != nil {
		return nil, false, err
	}
	return &Session{
		store:     store,
		accountID: acct.ID,
		holder:    acct.Holder,
		bankName:  acct.BankName,
		balance:   acct.Balance,
	}, created, nil
}

// Deposit 存款，成功時刷新快取餘額
func (s *Session) Deposit(ctx context.Context, amount int64, source string) (int64, error) {
	balance, err := s.store.RecordDeposit(ctx, s.accountID, amount, source)
	if err != nil {
		return 0, err
	}
	s.balance = balance
	return balance, nil
}

// Withdraw 提款，成功時刷新快取餘額
func (s *Session) Withdraw(ctx context.Context, amount int64, reason string) (int64, error) {
	balance, err := s.store.RecordWithdrawal(ctx, s.accountID, amount, reason)
	if err != nil {
		return 0, err
	}
	s.balance = balance
	return balance, nil
}

// CheckBalance 讀取權威餘額（不信任快取），並留下稽核紀錄
func (s *Session) CheckBalance(ctx context.Context) (int64, error) {
	balance, err := s.store.RecordBalanceCheck(ctx, s.accountID)
	if err != nil {
		return 0, err
	}
	s.balance = balance
	return balance, nil
}

// History 回傳帳戶交易紀錄，最新在前
func (s *Session) History(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.ListTransactions(ctx, s.accountID)
}

// AccountID 回傳綁定的帳戶 ID
func (s *Session) AccountID() int64 {
	return s.accountID
}

// Holder 回傳帳戶持有人名稱
func (s *Session) Holder() string {
	return s.holder
}

// BankName 回傳銀行名稱
func (s *Session) BankName() string {
	return s.bankName
}

// Balance 回傳快取餘額（可能過期，權威值請用 CheckBalance）
func (s *Session) Balance() int64 {
	return s.balance
}
