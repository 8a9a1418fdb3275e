// Package infoservice manages business logic layer of the public catalog: banners and services.
package infoservice

import (
	"context"
	"strings"
	"time"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/rs/zerolog"
)

// Cache keys.
const (
	BannersKey  = "banners"
	ServicesKey = "services"
)

// UploadsPath is the public path images are served from.
const UploadsPath = "/uploads/"

// BannerRepo provides banner data access needed by info service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package infoservice
type BannerRepo interface {
	List(ctx context.Context) ([]domain.Banner, error)
}

// ServiceRepo provides service data access needed by info service layer.
type ServiceRepo interface {
	List(ctx context.Context) ([]domain.Service, error)
}

// Cache is a read-through cache of catalog listings.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service facilitates info service layer logic.
type Service struct {
	banners  BannerRepo
	services ServiceRepo
	cache    Cache
	baseURL  string
	ttl      time.Duration
}

// New returns info service. A nil cache disables caching.
func New(br BannerRepo, sr ServiceRepo, cache Cache, baseURL string, ttl time.Duration) *Service {
	return &Service{
		banners:  br,
		services: sr,
		cache:    cache,
		baseURL:  strings.TrimRight(baseURL, "/"),
		ttl:      ttl,
	}
}

func (s *Service) imageURL(name string) string {
	if name == "" {
		return ""
	}

	return s.baseURL + UploadsPath + name
}

func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	l := zerolog.Ctx(ctx)

	if s.cache != nil {
		var items []T

		found, err := s.cache.Get(ctx, key, &items)
		if err == nil && found {
			return items, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
			l.Warn().Err(err).Str("key", key).Msg("cannot cache listing")
		}
	}

	return items, nil
}

// ListBanners returns every banner with an absolute image URL.
func (s *Service) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	items, err := cached(ctx, s, BannersKey, s.banners.List)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Banner, len(items))
	for i, b := range items {
		b.BannerImage = s.imageURL(b.BannerImage)
		res[i] = b
	}

	return res, nil
}

// ListServices returns every payable service with an absolute icon URL.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	items, err := cached(ctx, s, ServicesKey, s.services.List)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Service, len(items))
	for i, svc := range items {
		svc.ServiceIcon = s.imageURL(svc.ServiceIcon)
		res[i] = svc
	}

	return res, nil
}
