package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/sqlite"
)

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	ID        int64  `gorm:"column:account_id;primaryKey;autoIncrement"`
	Holder    string `gorm:"column:account_holder;not null;uniqueIndex"`
	BankName  string `gorm:"column:bank_name;not null"`
	Balance   int64  `gorm:"column:balance;not null;default:0"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:milli"` // 自動寫入時間

	// 帳戶刪除時級聯刪除所有交易紀錄
	Transactions []sqlTransaction `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// sqlTransaction 對應資料庫的 transactions 表
type sqlTransaction struct {
	ID             int64   `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	AccountID      int64   `gorm:"column:account_id;not null;index"`
	RefID          []byte  `gorm:"column:ref_id;type:blob;uniqueIndex"` // 對應 domain.Transaction.RefID
	Action         string  `gorm:"column:action;not null;check:action IN ('Deposit','Withdrawal','Balance Check')"`
	Amount         *int64  `gorm:"column:amount"`
	SourceOrReason *string `gorm:"column:source_or_reason"`
	BalanceAfter   int64   `gorm:"column:balance_after;not null"`
	CreatedAt      int64   `gorm:"column:transaction_date;autoCreateTime:milli"` // 自動寫入時間
}

func (*sqlTransaction) TableName() string {
	return "transactions"
}

type SQLiteLedger struct {
	client *sqlite.Client
}

// NewSQLiteLedger 建立 SQLite 帳本並確保 schema 就緒
func NewSQLiteLedger(client *sqlite.Client) (*SQLiteLedger, error) {
	if err := client.DB().AutoMigrate(&sqlAccount{}, &sqlTransaction{}); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return &SQLiteLedger{
		client: client,
	}, nil
}

// FindOrCreateAccount 依 holder 查找帳戶，不存在則建立
// holder 有唯一索引，重複呼叫不會產生第二個帳戶
func (ledger *SQLiteLedger) FindOrCreateAccount(ctx context.Context, holder, bankName string) (*domain.Account, bool, error) {
	var row sqlAccount
	created := false
	err := ledger.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("account_holder = ?", holder).First(&row).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row = sqlAccount{Holder: holder, BankName: bankName}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, storageErr("find or create account", err)
	}
	return rowToAccount(&row), created, nil
}

// RecordDeposit 存款：更新餘額並追加交易紀錄，兩者在同一個 Transaction 內提交
func (ledger *SQLiteLedger) RecordDeposit(ctx context.Context, accountID int64, amount int64, source string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return ledger.record(ctx, accountID, domain.ActionDeposit, amount, source)
}

// RecordWithdrawal 提款：餘額不足時整筆拒絕，不留下任何狀態變更
func (ledger *SQLiteLedger) RecordWithdrawal(ctx context.Context, accountID int64, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return ledger.record(ctx, accountID, domain.ActionWithdrawal, amount, reason)
}

// record 執行一筆存提款：讀餘額 → 檢查 → 更新 → 追加紀錄
func (ledger *SQLiteLedger) record(ctx context.Context, accountID int64, action domain.Action, amount int64, sourceOrReason string) (int64, error) {
	var newBalance int64
	err := ledger.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row sqlAccount
		if err := tx.Where("account_id = ?", accountID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		switch action {
		case domain.ActionDeposit:
			row.Balance += amount
		case domain.ActionWithdrawal:
			if row.Balance < amount {
				return domain.ErrInsufficientFunds
			}
			row.Balance -= amount
		}

		if err := tx.Model(&sqlAccount{}).
			Where("account_id = ?", accountID).
			Update("balance", row.Balance).Error; err != nil {
			return err
		}

		refID := uuid.New()
		record := sqlTransaction{
			AccountID:      accountID,
			RefID:          refID[:],
			Action:         string(action),
			Amount:         &amount,
			SourceOrReason: &sourceOrReason,
			BalanceAfter:   row.Balance,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		newBalance = row.Balance
		return nil
	})
	if err != nil {
		return 0, storageErr(string(action), err)
	}
	return newBalance, nil
}

// RecordBalanceCheck 重讀權威餘額並留下一筆稽核紀錄 (amount / source 皆為 NULL)
func (ledger *SQLiteLedger) RecordBalanceCheck(ctx context.Context, accountID int64) (int64, error) {
	var balance int64
	err := ledger.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row sqlAccount
		if err := tx.Where("account_id = ?", accountID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		refID := uuid.New()
		record := sqlTransaction{
			AccountID:    accountID,
			RefID:        refID[:],
			Action:       string(domain.ActionBalanceCheck),
			BalanceAfter: row.Balance,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		balance = row.Balance
		return nil
	})
	if err != nil {
		return 0, storageErr("balance check", err)
	}
	return balance, nil
}

// ListTransactions 回傳帳戶所有交易紀錄，最新在前（日期相同時以 ID 降冪決勝）
func (ledger *SQLiteLedger) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	db := ledger.client.DB().WithContext(ctx)

	var count int64
	if err := db.Model(&sqlAccount{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return nil, storageErr("list transactions", err)
	}
	if count == 0 {
		return nil, domain.ErrAccountNotFound
	}

	var rows []sqlTransaction
	if err := db.Where("account_id = ?", accountID).
		Order("transaction_date DESC, transaction_id DESC").
		Find(&rows).Error; err != nil {
		return nil, storageErr("list transactions", err)
	}

	result := make([]domain.Transaction, 0, len(rows))
	for i := range rows {
		result = append(result, *rowToTransaction(&rows[i]))
	}
	return result, nil
}

// DeleteAccount 刪除帳戶，交易紀錄由外鍵 ON DELETE CASCADE 一併清除
func (ledger *SQLiteLedger) DeleteAccount(ctx context.Context, accountID int64) error {
	res := ledger.client.DB().WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&sqlAccount{})
	if res.Error != nil {
		return storageErr("delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func rowToAccount(row *sqlAccount) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		Holder:    row.Holder,
		BankName:  row.BankName,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}

func rowToTransaction(row *sqlTransaction) *domain.Transaction {
	t := &domain.Transaction{
		ID:             row.ID,
		AccountID:      row.AccountID,
		Action:         domain.Action(row.Action),
		Amount:         row.Amount,
		SourceOrReason: row.SourceOrReason,
		BalanceAfter:   row.BalanceAfter,
		CreatedAt:      row.CreatedAt,
	}
	if ref, err := uuid.FromBytes(row.RefID); err == nil {
		t.RefID = ref
	}
	return t
}

// storageErr 保留領域錯誤，其餘視為儲存媒介故障
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrInvalidAmount) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}

var _ usecase.LedgerStore = (*SQLiteLedger)(nil)
