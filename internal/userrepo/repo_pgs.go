// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS working on db, which may be a transaction.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const userColumns = `id, email, first_name, last_name, profile_image, password, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.ProfileImage,
		&u.HashedPassword,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

// CreateQuery inserts into users table.
const CreateQuery = `
INSERT INTO users (
    email,
    first_name,
    last_name,
    password
) VALUES (
    $1, $2, $3, $4
) RETURNING ` + userColumns

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, CreateQuery,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.HashedPassword,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "users_email_key" {
				return u, domain.ErrEmailAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

// GetByID returns the user with the given id.
func (r *RepoPGS) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.get(ctx, getByIDQuery, id)
}

const getByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

// GetByEmail returns the user with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, getByEmailQuery, email)
}

func (r *RepoPGS) get(ctx context.Context, query string, arg any) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const existsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

// Exists reports whether the user with the given id exists.
func (r *RepoPGS) Exists(ctx context.Context, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	var ok bool

	if err := r.db.QueryRowContext(ctx, existsQuery, id).Scan(&ok); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return ok, nil
}

const updateQuery = `
UPDATE users
SET
    first_name = COALESCE(NULLIF($2, ''), first_name),
    last_name = COALESCE(NULLIF($3, ''), last_name),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

// Update sets the non-empty name fields of arg and returns the updated user.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, updateQuery, arg.ID, arg.FirstName, arg.LastName))
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const updateProfileImageQuery = `
UPDATE users
SET
    profile_image = $2,
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

// UpdateProfileImage stores the file name of the user's profile image.
func (r *RepoPGS) UpdateProfileImage(ctx context.Context, id int64, image string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, updateProfileImageQuery, id, image))
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}
