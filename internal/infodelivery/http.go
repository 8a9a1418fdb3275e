// Package infodelivery manages delivery layer of banners and services.
package infodelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

// Service provides service layer interface needed by information delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package infodelivery
type Service interface {
	ListBanners(ctx context.Context) ([]domain.Banner, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
}

// Handler facilitates information delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns information handler.
func NewHandler(is Service) *Handler {
	return &Handler{
		service: is,
	}
}

// ListBanners handles http request to list banners.
func (h *Handler) ListBanners(gctx *gin.Context) {
	banners, err := h.service.ListBanners(gctx.Request.Context())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", banners))
}

// ListServices handles http request to list payable services.
func (h *Handler) ListServices(gctx *gin.Context) {
	services, err := h.service.ListServices(gctx.Request.Context())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", services))
}
