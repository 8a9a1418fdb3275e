// Package helpers seeds wallet rows for integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/passpkg"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// Password is the plain password of every seeded user.
const Password = "secret123"

// SeedUser inserts a random user whose password is Password.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashed, err := passpkg.Hash(Password)
	if err != nil {
		t.Fatalf("passpkg.Hash returned error: %v", err)
	}

	u := domain.User{
		Email:          randompkg.Email(),
		FirstName:      randompkg.Name(),
		LastName:       randompkg.Name(),
		HashedPassword: hashed,
	}

	const query = `
	INSERT INTO users (email, first_name, last_name, password)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at`

	row := db.QueryRowContext(context.Background(), query, u.Email, u.FirstName, u.LastName, u.HashedPassword)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	return u
}

// SeedBalance creates the balance row of userID holding amount.
func SeedBalance(t *testing.T, db dbpkg.SQLInterface, userID int64, amount decimal.Decimal) {
	t.Helper()

	const query = `INSERT INTO balances (user_id, balance) VALUES ($1, $2)`

	if _, err := db.ExecContext(context.Background(), query, userID, amount); err != nil {
		t.Fatalf("seed balance failed: %v", err)
	}
}

// SeedService inserts a service with a random code and the given tariff.
func SeedService(t *testing.T, db dbpkg.SQLInterface, tariff decimal.Decimal) domain.Service {
	t.Helper()

	s := domain.Service{
		ServiceCode:   "T_" + randompkg.ServiceCode(),
		ServiceName:   randompkg.Name(),
		ServiceIcon:   randompkg.String(8) + ".png",
		ServiceTariff: tariff,
	}

	const query = `
	INSERT INTO services (service_code, service_name, service_icon, service_tariff)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

	row := db.QueryRowContext(context.Background(), query, s.ServiceCode, s.ServiceName, s.ServiceIcon, s.ServiceTariff)
	if err := row.Scan(&s.ID); err != nil {
		t.Fatalf("seed service failed: %v", err)
	}

	return s
}

// Balance reads the persisted balance of userID.
func Balance(t *testing.T, db dbpkg.SQLInterface, userID int64) decimal.Decimal {
	t.Helper()

	var b decimal.Decimal

	const query = `SELECT balance FROM balances WHERE user_id = $1`

	if err := db.QueryRowContext(context.Background(), query, userID).Scan(&b); err != nil {
		t.Fatalf("read balance failed: %v", err)
	}

	return b
}
