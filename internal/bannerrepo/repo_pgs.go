// Package bannerrepo manages repository layer of banners.
package bannerrepo

import (
	"context"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates banner repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns banner RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const listQuery = `
SELECT id, banner_name, banner_image, description
FROM banners
ORDER BY created_at DESC, id DESC
`

// List returns every banner, newest first.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Banner, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Banner{}

	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.BannerName, &b.BannerImage, &b.Description); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, b)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
