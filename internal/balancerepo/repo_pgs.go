// Package balancerepo manages repository layer of user balances.
package balancerepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates balance repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns balance RepoPGS working on db, which may be a transaction.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT user_id, balance, created_at, updated_at
FROM balances
WHERE user_id = $1
`

const lockQuery = getQuery + `FOR UPDATE`

func (r *RepoPGS) scan(ctx context.Context, query string, userID int64) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, userID)

	var b domain.Balance

	err := row.Scan(&b.UserID, &b.Balance, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, domain.ErrBalanceNotFound
		}

		l.Error().Err(err).Send()

		return b, errorspkg.ErrInternal
	}

	return b, nil
}

// Get returns the balance of the user without locking it.
func (r *RepoPGS) Get(ctx context.Context, userID int64) (domain.Balance, error) {
	return r.scan(ctx, getQuery, userID)
}

const createQuery = `
INSERT INTO balances (user_id, balance)
VALUES ($1, 0)
ON CONFLICT (user_id) DO NOTHING
`

// Create inserts a zero balance for the user unless one already exists.
func (r *RepoPGS) Create(ctx context.Context, userID int64) error {
	l := zerolog.Ctx(ctx)

	_, err := r.db.ExecContext(ctx, createQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "balances_user_id_fkey" {
			return domain.ErrUserNotFound
		}

		return errorspkg.ErrInternal
	}

	return nil
}

// GetOrCreate returns the balance of the user, creating a zero balance first if absent.
//
// Concurrent first calls never create duplicates and never fail on the conflict.
func (r *RepoPGS) GetOrCreate(ctx context.Context, userID int64) (domain.Balance, error) {
	b, err := r.Get(ctx, userID)
	if err != domain.ErrBalanceNotFound {
		return b, err
	}

	if err := r.Create(ctx, userID); err != nil {
		return b, err
	}

	return r.Get(ctx, userID)
}

// LockOrCreate locks the balance row of the user until the surrounding transaction ends.
//
// A missing row is created with zero balance and then locked.
func (r *RepoPGS) LockOrCreate(ctx context.Context, userID int64) (domain.Balance, error) {
	b, err := r.scan(ctx, lockQuery, userID)
	if err != domain.ErrBalanceNotFound {
		return b, err
	}

	if err := r.Create(ctx, userID); err != nil {
		return b, err
	}

	return r.scan(ctx, lockQuery, userID)
}

const updateQuery = `
UPDATE balances
SET balance = $2, updated_at = now()
WHERE user_id = $1
`

// Update sets the balance of the user.
func (r *RepoPGS) Update(ctx context.Context, userID int64, balance decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, updateQuery, userID, balance)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "balances_balance_check" {
			return domain.ErrInsufficientBalance
		}

		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrBalanceUpdateFailed
	}

	return nil
}
