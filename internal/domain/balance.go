package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBalanceNotFound indicates that the user has no balance row.
	ErrBalanceNotFound = errors.New("balance not found")
	// ErrBalanceUpdateFailed indicates that the balance update affected no row.
	ErrBalanceUpdateFailed = errors.New("failed to update balance")
	// ErrInsufficientBalance indicates that the balance does not cover the payment.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Balance holds the wallet balance of a user.
type Balance struct {
	UserID    int64           `json:"-"`
	Balance   decimal.Decimal `json:"balance"` // never negative
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
