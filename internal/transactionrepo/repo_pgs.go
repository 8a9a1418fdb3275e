// Package transactionrepo manages repository layer of wallet transactions.
//
// TopUp and Pay are the only writers of balances and the only producers of
// transaction rows. Each runs in a single database transaction that locks the
// user's balance row and the day's invoice counter row until commit or rollback.
package transactionrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-petr/pet-wallet/internal/balancerepo"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/servicerepo"
	"github.com/go-petr/pet-wallet/internal/userrepo"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/invoicepkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
	now  func() time.Time
}

// NewTxRepoPGS returns transaction RepoPGS bound to db, usually a *sql.Tx.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db:  db,
		now: time.Now,
	}
}

// NewRepoPGS returns transaction RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
		now:  time.Now,
	}
}

const transactionColumns = `id, invoice_number, user_id, service_id, transaction_type, total_amount, created_at`

const createQuery = `
INSERT INTO transactions (
    invoice_number,
    user_id,
    service_id,
    transaction_type,
    total_amount
) VALUES (
    $1, $2, $3, $4, $5
) RETURNING ` + transactionColumns

// Create appends the ledger entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var serviceID sql.NullInt64
	if arg.ServiceID != nil {
		serviceID = sql.NullInt64{Int64: *arg.ServiceID, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.InvoiceNumber,
		arg.UserID,
		serviceID,
		arg.TransactionType,
		arg.TotalAmount,
	)

	var (
		t   domain.Transaction
		sid sql.NullInt64
	)

	err := row.Scan(
		&t.ID,
		&t.InvoiceNumber,
		&t.UserID,
		&sid,
		&t.TransactionType,
		&t.TotalAmount,
		&t.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionCreateFailed
		}

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_user_id_fkey":
				return t, domain.ErrUserNotFound
			case "transactions_service_id_fkey":
				return t, domain.ErrServiceNotFound
			case "transactions_total_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	if sid.Valid {
		t.ServiceID = &sid.Int64
	}

	return t, nil
}

const listQuery = `
SELECT
    t.id, t.invoice_number, t.user_id, t.service_id, t.transaction_type, t.total_amount, t.created_at,
    s.service_name
FROM transactions t
LEFT JOIN services s ON s.id = t.service_id
WHERE t.user_id = $1
ORDER BY t.created_at DESC, t.id DESC
LIMIT $2 OFFSET $3
`

// List returns a page of the user's transactions, newest first, with the current
// name of each linked service.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.TransactionWithService, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionWithService{}

	for rows.Next() {
		var (
			t    domain.TransactionWithService
			sid  sql.NullInt64
			name sql.NullString
		)

		if err := rows.Scan(
			&t.ID,
			&t.InvoiceNumber,
			&t.UserID,
			&sid,
			&t.TransactionType,
			&t.TotalAmount,
			&t.CreatedAt,
			&name,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if sid.Valid {
			t.ServiceID = &sid.Int64
		}

		if name.Valid {
			t.ServiceName = &name.String
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const countQuery = `SELECT count(*) FROM transactions WHERE user_id = $1`

// Count returns the number of the user's transactions.
func (r *RepoPGS) Count(ctx context.Context, userID int64) (int64, error) {
	l := zerolog.Ctx(ctx)

	var n int64

	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&n); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return n, nil
}

const (
	lockInvoiceDayQuery = `
SELECT last_invoice_number
FROM invoice_sequences
WHERE day = $1
FOR UPDATE
`
	createInvoiceDayQuery = `
INSERT INTO invoice_sequences (day)
VALUES ($1)
ON CONFLICT (day) DO NOTHING
`
	updateInvoiceDayQuery = `
UPDATE invoice_sequences
SET last_invoice_number = $2
WHERE day = $1
`
)

const dayLayout = "2006-01-02"

func (r *RepoPGS) lockInvoiceDay(ctx context.Context, day string) (sql.NullString, error) {
	var last sql.NullString

	err := r.db.QueryRowContext(ctx, lockInvoiceDayQuery, day).Scan(&last)

	return last, err
}

// NextInvoiceNumber reserves the next invoice number of the current day.
//
// It must run inside a transaction: the day's counter row stays locked until
// the transaction ends, so concurrent callers queue and rolled back numbers
// are reused.
func (r *RepoPGS) NextInvoiceNumber(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	today := r.now()
	day := today.Format(dayLayout)

	last, err := r.lockInvoiceDay(ctx, day)
	if err == sql.ErrNoRows {
		if _, err = r.db.ExecContext(ctx, createInvoiceDayQuery, day); err != nil {
			l.Error().Err(err).Send()
			return "", errorspkg.ErrInternal
		}

		last, err = r.lockInvoiceDay(ctx, day)
	}

	if err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	next, err := invoicepkg.NextChecked(last.String, today)
	if err != nil {
		l.Warn().Err(err).Str("last_invoice_number", last.String).Msg("restarting invoice sequence")
		next = invoicepkg.Next(last.String, today)
	}

	if _, err := r.db.ExecContext(ctx, updateInvoiceDayQuery, day, next); err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	return next, nil
}

type txRepos struct {
	transactions *RepoPGS
	balances     *balancerepo.RepoPGS
	users        *userrepo.RepoPGS
	services     *servicerepo.RepoPGS
}

// execTx runs fn within a database transaction.
//
// The transaction is rolled back when fn fails and fn's error is returned unchanged.
func (r *RepoPGS) execTx(ctx context.Context, fn func(q txRepos) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	q := txRepos{
		transactions: &RepoPGS{db: tx, now: r.now},
		balances:     balancerepo.NewRepoPGS(tx),
		users:        userrepo.NewRepoPGS(tx),
		services:     servicerepo.NewRepoPGS(tx),
	}

	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Msg("rollback failed")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// TopUp adds amount to the user's balance and records a TOPUP transaction.
//
// The balance row is created with zero balance if the user has none yet.
func (r *RepoPGS) TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (domain.TopUpResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TopUpResult

	err := r.execTx(ctx, func(q txRepos) error {
		ok, err := q.users.Exists(ctx, userID)
		if err != nil {
			return err
		}

		if !ok {
			return domain.ErrUserNotFound
		}

		b, err := q.balances.LockOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		newBalance := b.Balance.Add(amount)

		if err := q.balances.Update(ctx, userID, newBalance); err != nil {
			return err
		}

		invoice, err := q.transactions.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		_, err = q.transactions.Create(ctx, domain.CreateTransactionParams{
			InvoiceNumber:   invoice,
			UserID:          userID,
			TransactionType: domain.TypeTopUp,
			TotalAmount:     amount,
		})
		if err != nil {
			return err
		}

		result.Balance = newBalance

		return nil
	})
	if err != nil {
		l.Info().Err(err).Int64("user_id", userID).Str("amount", amount.String()).Msg("top up failed")
		return domain.TopUpResult{}, err
	}

	return result, nil
}

// Pay charges the tariff of the service with the given code to the user's balance
// and records a PAYMENT transaction with the tariff at the time of payment.
func (r *RepoPGS) Pay(ctx context.Context, userID int64, serviceCode string) (domain.PaymentResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.PaymentResult

	err := r.execTx(ctx, func(q txRepos) error {
		service, err := q.services.GetByCode(ctx, serviceCode)
		if err != nil {
			return err
		}

		ok, err := q.users.Exists(ctx, userID)
		if err != nil {
			return err
		}

		if !ok {
			return domain.ErrUserNotFound
		}

		b, err := q.balances.LockOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		if b.Balance.LessThan(service.ServiceTariff) {
			return domain.ErrInsufficientBalance
		}

		newBalance := b.Balance.Sub(service.ServiceTariff)

		if err := q.balances.Update(ctx, userID, newBalance); err != nil {
			return err
		}

		invoice, err := q.transactions.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		t, err := q.transactions.Create(ctx, domain.CreateTransactionParams{
			InvoiceNumber:   invoice,
			UserID:          userID,
			ServiceID:       &service.ID,
			TransactionType: domain.TypePayment,
			TotalAmount:     service.ServiceTariff,
		})
		if err != nil {
			return err
		}

		result = domain.PaymentResult{
			InvoiceNumber:   t.InvoiceNumber,
			ServiceCode:     service.ServiceCode,
			ServiceName:     service.ServiceName,
			TransactionType: t.TransactionType,
			TotalAmount:     t.TotalAmount,
			CreatedOn:       t.CreatedAt,
		}

		return nil
	})
	if err != nil {
		l.Info().Err(err).Int64("user_id", userID).Str("service_code", serviceCode).Msg("payment failed")
		return domain.PaymentResult{}, err
	}

	return result, nil
}
