// Package servicerepo manages repository layer of payable services.
package servicerepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates service repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns service RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const listQuery = `
SELECT id, service_code, service_name, service_icon, service_tariff
FROM services
ORDER BY service_code
`

// List returns every service ordered by code.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Service, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Service{}

	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.ID,
			&s.ServiceCode,
			&s.ServiceName,
			&s.ServiceIcon,
			&s.ServiceTariff,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const getByCodeQuery = `
SELECT id, service_code, service_name, service_icon, service_tariff
FROM services
WHERE service_code = $1
`

// GetByCode returns the service with the given code.
func (r *RepoPGS) GetByCode(ctx context.Context, code string) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByCodeQuery, code)

	var s domain.Service

	err := row.Scan(
		&s.ID,
		&s.ServiceCode,
		&s.ServiceName,
		&s.ServiceIcon,
		&s.ServiceTariff,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return s, domain.ErrServiceNotFound
		}

		l.Error().Err(err).Send()

		return s, errorspkg.ErrInternal
	}

	return s, nil
}
