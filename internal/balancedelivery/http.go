// Package balancedelivery manages delivery layer of balances.
package balancedelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Get(ctx context.Context, userID int64) (domain.Balance, error)
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance handler.
func NewHandler(bs Service) *Handler {
	return &Handler{
		service: bs,
	}
}

// Get handles http request to get the balance of the authenticated user.
func (h *Handler) Get(gctx *gin.Context) {
	payload := middleware.Payload(gctx)

	balance, err := h.service.Get(gctx.Request.Context(), payload.UserID)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", balance))
}
