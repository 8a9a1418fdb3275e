// Package transactionservice manages business logic layer of top-ups, payments and history.
package transactionservice

import (
	"context"
	"strings"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Default pagination of the transaction history.
const (
	DefaultPage  int32 = 1
	DefaultLimit int32 = 10
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (domain.TopUpResult, error)
	Pay(ctx context.Context, userID int64, serviceCode string) (domain.PaymentResult, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.TransactionWithService, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage wallet business logic.
func New(tr Repo) *Service {
	return &Service{
		repo: tr,
	}
}

// ValidAmount reports whether amount is positive with at most two decimal places.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Round(2))
}

// TopUp checks the amount and then adds it to the user's balance.
func (s *Service) TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (domain.TopUpResult, error) {
	l := zerolog.Ctx(ctx)

	if !ValidAmount(amount) {
		l.Info().Str("amount", amount.String()).Msg("invalid top up amount")
		return domain.TopUpResult{}, domain.ErrInvalidAmount
	}

	return s.repo.TopUp(ctx, userID, amount)
}

// Pay checks the service code and then pays the service from the user's balance.
func (s *Service) Pay(ctx context.Context, userID int64, serviceCode string) (domain.PaymentResult, error) {
	l := zerolog.Ctx(ctx)

	serviceCode = strings.TrimSpace(serviceCode)
	if serviceCode == "" {
		l.Info().Msg("empty service code")
		return domain.PaymentResult{}, domain.ErrInvalidServiceCode
	}

	return s.repo.Pay(ctx, userID, serviceCode)
}

// History returns a page of the user's transactions, newest first.
//
// Non positive page and limit fall back to DefaultPage and DefaultLimit. A page past
// the end has no items.
func (s *Service) History(ctx context.Context, userID int64, page, limit int32) (domain.History, error) {
	if page <= 0 {
		page = DefaultPage
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return domain.History{}, err
	}

	res := domain.History{
		Items: []domain.HistoryItem{},
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	}

	offset := int64(page-1) * int64(limit)
	if offset >= total {
		return res, nil
	}

	list, err := s.repo.List(ctx, domain.ListTransactionsParams{
		UserID: userID,
		Limit:  limit,
		Offset: int32(offset),
	})
	if err != nil {
		return domain.History{}, err
	}

	for _, t := range list {
		res.Items = append(res.Items, domain.HistoryItem{
			InvoiceNumber:   t.InvoiceNumber,
			TransactionType: t.TransactionType,
			Description:     describe(t),
			TotalAmount:     t.TotalAmount,
			CreatedOn:       t.CreatedAt,
		})
	}

	return res, nil
}

func describe(t domain.TransactionWithService) string {
	if t.TransactionType == domain.TypeTopUp {
		return domain.TopUpDescription
	}

	if t.ServiceName != nil {
		return *t.ServiceName
	}

	return domain.PaymentDescription
}
