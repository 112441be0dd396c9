package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JoeShih716/go-bank-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
)

// CLI 是互動式選單的 driving adapter
// 負責輸入解析與結果顯示；所有業務規則都在 LedgerStore 內
type CLI struct {
	store usecase.LedgerStore
	in    *bufio.Scanner
	out   io.Writer
}

func New(store usecase.LedgerStore, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		store: store,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run 執行主迴圈：詢問帳戶 → 選單 → 分派指令
// 業務錯誤只顯示訊息並繼續；輸入流結束 (EOF) 或 ctx 取消時返回
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "==================================================")
	fmt.Fprintln(c.out, "Welcome to Bank Ledger")
	fmt.Fprintln(c.out, "==================================================")

	holder, ok := c.prompt("Enter account holder name: ")
	if !ok {
		return c.in.Err()
	}
	bankName, ok := c.prompt("Enter bank name: ")
	if !ok {
		return c.in.Err()
	}

	session, created, err := usecase.OpenSession(ctx, c.store, holder, bankName)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(c.out, "New account created for %s\n", session.Holder())
	} else {
		fmt.Fprintf(c.out, "Account retrieved for %s\n", session.Holder())
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "(1) Deposit money")
		fmt.Fprintln(c.out, "(2) Withdraw money")
		fmt.Fprintln(c.out, "(3) Check balance")
		fmt.Fprintln(c.out, "(4) View transaction history")
		fmt.Fprintln(c.out, "(5) Exit")

		input, ok := c.prompt("Choose an option (1-5): ")
		if !ok {
			return c.in.Err()
		}

		switch ParseCommand(input) {
		case CommandDeposit:
			c.runDeposit(ctx, session)
		case CommandWithdraw:
			c.runWithdraw(ctx, session)
		case CommandBalance:
			c.runBalance(ctx, session)
		case CommandHistory:
			c.runHistory(ctx, session)
		case CommandExit:
			fmt.Fprintln(c.out, "Thank you for using Bank Ledger!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid option. Please choose 1-5.")
		}
	}
}

func (c *CLI) runDeposit(ctx context.Context, session *usecase.Session) {
	input, ok := c.prompt("Enter deposit amount: $")
	if !ok {
		return
	}
	amount, err := ParseAmount(input)
	if err != nil {
		c.printError(err)
		return
	}
	source, ok := c.prompt("Enter source (e.g. Salary, Transfer): ")
	if !ok {
		return
	}

	balance, err := session.Deposit(ctx, amount, source)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Deposited: $%s\n", FormatAmount(amount))
	fmt.Fprintf(c.out, "Current balance: $%s\n", FormatAmount(balance))
}

func (c *CLI) runWithdraw(ctx context.Context, session *usecase.Session) {
	input, ok := c.prompt("Enter withdrawal amount: $")
	if !ok {
		return
	}
	amount, err := ParseAmount(input)
	if err != nil {
		c.printError(err)
		return
	}
	reason, ok := c.prompt("Enter reason for withdrawal: ")
	if !ok {
		return
	}

	balance, err := session.Withdraw(ctx, amount, reason)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Withdrawn: $%s\n", FormatAmount(amount))
	fmt.Fprintf(c.out, "Current balance: $%s\n", FormatAmount(balance))
}

func (c *CLI) runBalance(ctx context.Context, session *usecase.Session) {
	balance, err := session.CheckBalance(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintln(c.out, "========================================")
	fmt.Fprintf(c.out, "Account holder:  %s\n", session.Holder())
	fmt.Fprintf(c.out, "Bank name:       %s\n", session.BankName())
	fmt.Fprintf(c.out, "Account ID:      %d\n", session.AccountID())
	fmt.Fprintf(c.out, "Current balance: $%s\n", FormatAmount(balance))
	fmt.Fprintln(c.out, "========================================")
}

func (c *CLI) runHistory(ctx context.Context, session *usecase.Session) {
	history, err := session.History(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(c.out, "No transactions found.")
		return
	}

	fmt.Fprintf(c.out, "Transaction history for %s\n", session.Holder())
	fmt.Fprintf(c.out, "%-5s %-14s %-12s %-20s %-12s %s\n",
		"ID", "Action", "Amount", "Details", "Balance", "Date")
	for _, tran := range history {
		amount := "N/A"
		if tran.Amount != nil {
			amount = "$" + FormatAmount(*tran.Amount)
		}
		details := ""
		if tran.SourceOrReason != nil {
			details = *tran.SourceOrReason
		}
		date := time.UnixMilli(tran.CreatedAt).Format("2006-01-02 15:04:05")
		fmt.Fprintf(c.out, "%-5d %-14s %-12s %-20s $%-11s %s\n",
			tran.ID, tran.Action, amount, details, FormatAmount(tran.BalanceAfter), date)
	}
}

// prompt 顯示提示並讀一行輸入（去除前後空白）；ok 為 false 代表輸入流已結束
func (c *CLI) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// printError 把領域錯誤轉成使用者訊息；全部可恢復，不會中斷迴圈
func (c *CLI) printError(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		fmt.Fprintln(c.out, "Amount must be a positive number!")
	case errors.Is(err, domain.ErrInsufficientFunds):
		fmt.Fprintln(c.out, "Insufficient balance!")
	case errors.Is(err, domain.ErrAccountNotFound):
		fmt.Fprintln(c.out, "Account not found!")
	case errors.Is(err, domain.ErrStorageUnavailable):
		fmt.Fprintln(c.out, "Storage is unavailable, nothing was recorded. Please retry.")
	default:
		fmt.Fprintf(c.out, "Unexpected error: %v\n", err)
	}
}
