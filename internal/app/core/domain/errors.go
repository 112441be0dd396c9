package domain

import "errors"

var (
	// ErrInvalidAmount 金額必須為正數
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds 餘額不足
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrStorageUnavailable 儲存媒介無法讀寫；該筆操作視為未套用，可安全重試
	ErrStorageUnavailable = errors.New("storage unavailable")
)
