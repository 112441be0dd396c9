package csv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/journal"
)

const (
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"

	// accounts.csv 的紀錄類型
	accountRecordCreate = "create"
	accountRecordDelete = "delete"
)

// CSVLedger 是以兩個 append-only CSV 檔為後盾的帳本
// 寫入順序固定「先落盤、後套用」：journal Append 成功才改記憶體狀態，
// 開啟時重放兩個檔案重建狀態，餘額永遠與交易紀錄一致
type CSVLedger struct {
	mu           sync.Mutex
	accounts     *journal.Journal
	transactions *journal.Journal

	state      map[int64]*domain.Account
	byHolder   map[string]int64
	history    map[int64][]domain.Transaction
	seenRefIDs map[uuid.UUID]struct{}

	nextAccountID     int64
	nextTransactionID int64
}

// Open 開啟（或初始化）資料目錄並重放既有紀錄
func Open(dir string) (*CSVLedger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", domain.ErrStorageUnavailable, err)
	}

	accounts, err := journal.Open(filepath.Join(dir, accountsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: open accounts journal: %v", domain.ErrStorageUnavailable, err)
	}
	transactions, err := journal.Open(filepath.Join(dir, transactionsFile))
	if err != nil {
		accounts.Close()
		return nil, fmt.Errorf("%w: open transactions journal: %v", domain.ErrStorageUnavailable, err)
	}

	ledger := &CSVLedger{
		accounts:     accounts,
		transactions: transactions,
		state:        make(map[int64]*domain.Account),
		byHolder:     make(map[string]int64),
		history:      make(map[int64][]domain.Transaction),
		seenRefIDs:   make(map[uuid.UUID]struct{}),
	}
	if err := ledger.replay(); err != nil {
		accounts.Close()
		transactions.Close()
		return nil, err
	}
	return ledger, nil
}

// Close 關閉兩個 journal 檔案
func (c *CSVLedger) Close() error {
	if err := c.accounts.Close(); err != nil {
		c.transactions.Close()
		return err
	}
	return c.transactions.Close()
}

// replay 重建記憶體狀態：先重放帳戶事件（含刪除），再重放交易
// 已刪除帳戶的交易找不到歸屬，直接略過（等同級聯刪除）
func (c *CSVLedger) replay() error {
	err := c.accounts.ReadAll(func(record []string) error {
		switch record[0] {
		case accountRecordCreate:
			if len(record) != 5 {
				return fmt.Errorf("malformed account record: %v", record)
			}
			id, err := strconv.ParseInt(record[1], 10, 64)
			if err != nil {
				return err
			}
			createdAt, err := strconv.ParseInt(record[4], 10, 64)
			if err != nil {
				return err
			}
			acct := domain.NewAccount(id, record[2], record[3], createdAt)
			c.state[id] = acct
			c.byHolder[acct.Holder] = id
			if id > c.nextAccountID {
				c.nextAccountID = id
			}
		case accountRecordDelete:
			if len(record) != 2 {
				return fmt.Errorf("malformed account record: %v", record)
			}
			id, err := strconv.ParseInt(record[1], 10, 64)
			if err != nil {
				return err
			}
			if acct, ok := c.state[id]; ok {
				delete(c.byHolder, acct.Holder)
				delete(c.state, id)
			}
		default:
			return fmt.Errorf("unknown account record type: %q", record[0])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: replay accounts: %v", domain.ErrStorageUnavailable, err)
	}

	err = c.transactions.ReadAll(func(record []string) error {
		tran, err := decodeTransaction(record)
		if err != nil {
			return err
		}
		if tran.ID > c.nextTransactionID {
			c.nextTransactionID = tran.ID
		}
		// 去重：同一 RefID 只套用一次
		if _, ok := c.seenRefIDs[tran.RefID]; ok {
			return nil
		}
		acct, ok := c.state[tran.AccountID]
		if !ok {
			return nil // 帳戶已刪除
		}
		if err := c.apply(acct, tran); err != nil {
			return err
		}
		c.seenRefIDs[tran.RefID] = struct{}{}
		c.history[tran.AccountID] = append(c.history[tran.AccountID], *tran)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: replay transactions: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// apply 將單筆交易套用到帳戶（重放用，不寫檔）
func (c *CSVLedger) apply(acct *domain.Account, tran *domain.Transaction) error {
	switch tran.Action {
	case domain.ActionDeposit:
		return acct.Deposit(*tran.Amount)
	case domain.ActionWithdrawal:
		return acct.Withdraw(*tran.Amount)
	case domain.ActionBalanceCheck:
		return nil
	}
	return fmt.Errorf("unknown action: %q", tran.Action)
}

// FindOrCreateAccount 依 holder 查找帳戶，不存在則建立並落盤
func (c *CSVLedger) FindOrCreateAccount(ctx context.Context, holder, bankName string) (*domain.Account, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.byHolder[holder]; ok {
		cp := *c.state[id]
		return &cp, false, nil
	}

	acct := domain.NewAccount(c.nextAccountID+1, holder, bankName, time.Now().UnixMilli())
	record := []string{
		accountRecordCreate,
		strconv.FormatInt(acct.ID, 10),
		acct.Holder,
		acct.BankName,
		strconv.FormatInt(acct.CreatedAt, 10),
	}
	if err := c.accounts.Append(record); err != nil {
		return nil, false, fmt.Errorf("%w: append account: %v", domain.ErrStorageUnavailable, err)
	}

	c.nextAccountID = acct.ID
	c.state[acct.ID] = acct
	c.byHolder[holder] = acct.ID

	cp := *acct
	return &cp, true, nil
}

// RecordDeposit 存款：先寫 journal 再套用
func (c *CSVLedger) RecordDeposit(ctx context.Context, accountID int64, amount int64, source string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return c.record(accountID, domain.ActionDeposit, &amount, &source)
}

// RecordWithdrawal 提款：檢核通過才會寫入任何東西
func (c *CSVLedger) RecordWithdrawal(ctx context.Context, accountID int64, amount int64, reason string) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return c.record(accountID, domain.ActionWithdrawal, &amount, &reason)
}

// RecordBalanceCheck 讀取餘額並留下稽核紀錄
func (c *CSVLedger) RecordBalanceCheck(ctx context.Context, accountID int64) (int64, error) {
	return c.record(accountID, domain.ActionBalanceCheck, nil, nil)
}

// record 組裝交易 → 檢核 → Append → 套用到記憶體
// Append 失敗時狀態不變，該操作視為未發生
func (c *CSVLedger) record(accountID int64, action domain.Action, amount *int64, sourceOrReason *string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acct, ok := c.state[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}

	// 對暫存拷貝做檢核，journal 寫入成功前不動真實狀態
	scratch := *acct
	tran := &domain.Transaction{
		ID:             c.nextTransactionID + 1,
		AccountID:      accountID,
		RefID:          uuid.New(),
		Action:         action,
		Amount:         amount,
		SourceOrReason: sourceOrReason,
		CreatedAt:      time.Now().UnixMilli(),
	}
	if err := c.apply(&scratch, tran); err != nil {
		return 0, err
	}
	tran.BalanceAfter = scratch.Balance

	if err := c.transactions.Append(encodeTransaction(tran)); err != nil {
		return 0, fmt.Errorf("%w: append transaction: %v", domain.ErrStorageUnavailable, err)
	}

	c.nextTransactionID = tran.ID
	acct.Balance = scratch.Balance
	c.seenRefIDs[tran.RefID] = struct{}{}
	c.history[accountID] = append(c.history[accountID], *tran)
	return acct.Balance, nil
}

// ListTransactions 回傳交易紀錄，最新在前
func (c *CSVLedger) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.state[accountID]; !ok {
		return nil, domain.ErrAccountNotFound
	}

	history := c.history[accountID]
	// 重放與追加都維持 ID 升冪，反轉即為日期/ID 降冪
	result := make([]domain.Transaction, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		result = append(result, history[i])
	}
	return result, nil
}

// DeleteAccount 落盤一筆刪除事件，帳戶與其交易自記憶體移除
// 檔案中的舊交易在下次重放時因帳戶不存在而被略過
func (c *CSVLedger) DeleteAccount(ctx context.Context, accountID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	acct, ok := c.state[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	record := []string{accountRecordDelete, strconv.FormatInt(accountID, 10)}
	if err := c.accounts.Append(record); err != nil {
		return fmt.Errorf("%w: append delete: %v", domain.ErrStorageUnavailable, err)
	}

	delete(c.byHolder, acct.Holder)
	delete(c.state, accountID)
	delete(c.history, accountID)
	return nil
}

// encodeTransaction 將交易編碼為 CSV 欄位
// BalanceCheck 的 amount / source 以空欄位表示 NULL
func encodeTransaction(t *domain.Transaction) []string {
	amount := ""
	if t.Amount != nil {
		amount = strconv.FormatInt(*t.Amount, 10)
	}
	sourceOrReason := ""
	if t.SourceOrReason != nil {
		sourceOrReason = *t.SourceOrReason
	}
	return []string{
		strconv.FormatInt(t.ID, 10),
		strconv.FormatInt(t.AccountID, 10),
		t.RefID.String(),
		string(t.Action),
		amount,
		sourceOrReason,
		strconv.FormatInt(t.BalanceAfter, 10),
		strconv.FormatInt(t.CreatedAt, 10),
	}
}

// decodeTransaction 還原單筆交易，欄位數或內容不符即視為檔案毀損
func decodeTransaction(record []string) (*domain.Transaction, error) {
	if len(record) != 8 {
		return nil, fmt.Errorf("malformed transaction record: %v", record)
	}
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, err
	}
	accountID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return nil, err
	}
	refID, err := uuid.Parse(record[2])
	if err != nil {
		return nil, err
	}
	action := domain.Action(record[3])
	if !action.Valid() {
		return nil, fmt.Errorf("unknown action: %q", record[3])
	}
	tran := &domain.Transaction{
		ID:        id,
		AccountID: accountID,
		RefID:     refID,
		Action:    action,
	}
	if action != domain.ActionBalanceCheck {
		amount, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return nil, err
		}
		sourceOrReason := record[5]
		tran.Amount = &amount
		tran.SourceOrReason = &sourceOrReason
	}
	if tran.BalanceAfter, err = strconv.ParseInt(record[6], 10, 64); err != nil {
		return nil, err
	}
	if tran.CreatedAt, err = strconv.ParseInt(record[7], 10, 64); err != nil {
		return nil, err
	}
	return tran, nil
}

var _ usecase.LedgerStore = (*CSVLedger)(nil)
