// Package balanceservice manages business logic layer of balances.
package balanceservice

import (
	"context"

	"github.com/go-petr/pet-wallet/internal/domain"
)

// Repo provides data access layer interface needed by balance service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type Repo interface {
	GetOrCreate(ctx context.Context, userID int64) (domain.Balance, error)
}

// Service facilitates balance service layer logic.
type Service struct {
	repo Repo
}

// New returns balance service.
func New(br Repo) *Service {
	return &Service{
		repo: br,
	}
}

// Get returns the user's balance. A user without a balance gets a zero one.
func (s *Service) Get(ctx context.Context, userID int64) (domain.Balance, error) {
	return s.repo.GetOrCreate(ctx, userID)
}
