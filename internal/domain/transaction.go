// Package domain holds the wallet types and errors shared by every layer.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeTopUp   = "TOPUP"
	TypePayment = "PAYMENT"
)

// TopUpDescription describes every TOPUP history item.
const TopUpDescription = "Top Up balance"

// PaymentDescription describes a PAYMENT whose service no longer exists.
const PaymentDescription = "Payment"

var (
	// ErrInvalidAmount indicates a non positive amount or one with more than two decimals.
	ErrInvalidAmount = errors.New("Amount must be a positive number with at most two decimals")
	// ErrTransactionCreateFailed indicates that the ledger insert returned no row.
	ErrTransactionCreateFailed = errors.New("failed to create transaction")
)

// Transaction is an append-only ledger entry.
type Transaction struct {
	ID              int64           `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	UserID          int64           `json:"user_id"`
	ServiceID       *int64          `json:"service_id"` // nil for TOPUP
	TransactionType string          `json:"transaction_type"`
	TotalAmount     decimal.Decimal `json:"total_amount"` // must be positive
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to append a ledger entry.
type CreateTransactionParams struct {
	InvoiceNumber   string
	UserID          int64
	ServiceID       *int64
	TransactionType string
	TotalAmount     decimal.Decimal
}

// TransactionWithService is a ledger entry joined with the current name of its service.
type TransactionWithService struct {
	Transaction
	ServiceName *string
}

// TopUpResult is the result of the top-up transaction.
type TopUpResult struct {
	Balance decimal.Decimal `json:"balance"`
}

// PaymentResult is the result of the payment transaction.
type PaymentResult struct {
	InvoiceNumber   string          `json:"invoice_number"`
	ServiceCode     string          `json:"service_code"`
	ServiceName     string          `json:"service_name"`
	TransactionType string          `json:"transaction_type"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreatedOn       time.Time       `json:"created_on"`
}

// ListTransactionsParams is the input data to read a page of a user's ledger.
type ListTransactionsParams struct {
	UserID int64
	Limit  int32
	Offset int32
}

// HistoryItem is one row of the transaction history.
type HistoryItem struct {
	InvoiceNumber   string          `json:"invoice_number"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreatedOn       time.Time       `json:"created_on"`
}

// Pagination describes the page returned by History.
type Pagination struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// History is a page of the transaction history.
type History struct {
	Items      []HistoryItem `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
