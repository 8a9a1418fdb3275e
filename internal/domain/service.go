package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrServiceNotFound indicates that no service has the given code.
	ErrServiceNotFound = errors.New("Service not found")
	// ErrInvalidServiceCode indicates an empty or malformed service code.
	ErrInvalidServiceCode = errors.New("invalid service code")
)

// Service is a payable catalog entry.
type Service struct {
	ID            int64           `json:"-"`
	ServiceCode   string          `json:"service_code"`
	ServiceName   string          `json:"service_name"`
	ServiceIcon   string          `json:"service_icon"`
	ServiceTariff decimal.Decimal `json:"service_tariff"`
}
