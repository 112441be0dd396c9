package domain

// Account 帳戶：holder 名稱全系統唯一
type Account struct {
	ID        int64
	Holder    string
	BankName  string
	Balance   int64
	CreatedAt int64
}

func NewAccount(id int64, holder, bankName string, createdAt int64) *Account {
	return &Account{
		ID:        id,
		Holder:    holder,
		BankName:  bankName,
		CreatedAt: createdAt,
	}
}

// Deposit 存款
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance + amount
	return nil
}

// Withdraw 提款，餘額不足時拒絕且不改變任何狀態
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if a.Balance < amount {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance - amount
	return nil
}
