// Package transactiondelivery manages delivery layer of top-ups, payments and
// the transaction history.
package transactiondelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/web"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (domain.TopUpResult, error)
	Pay(ctx context.Context, userID int64, serviceCode string) (domain.PaymentResult, error)
	History(ctx context.Context, userID int64, page, limit int32) (domain.History, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type topUpRequest struct {
	TopUpAmount *decimal.Decimal `json:"top_up_amount" binding:"required"`
}

// TopUp handles http request to add money to the balance of the authenticated user.
func (h *Handler) TopUp(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	payload := middleware.Payload(gctx)

	var req topUpRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, domain.ErrInvalidAmount))

		return
	}

	result, err := h.service.TopUp(ctx, payload.UserID, *req.TopUpAmount)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Top up succeeded", result))
}

type payRequest struct {
	ServiceCode string `json:"service_code" binding:"required,servicecode"`
}

// Pay handles http request to pay a service from the balance of the authenticated user.
func (h *Handler) Pay(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	payload := middleware.Payload(gctx)

	var req payRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest,
			web.Message(http.StatusBadRequest, web.ValidationMessage(err, domain.ErrInvalidServiceCode.Error())))

		return
	}

	result, err := h.service.Pay(ctx, payload.UserID, req.ServiceCode)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Payment succeeded", result))
}

type historyRequest struct {
	Page  int32 `form:"page"`
	Limit int32 `form:"limit"`
}

// History handles http request to list the transactions of the authenticated user.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	payload := middleware.Payload(gctx)

	var req historyRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Message(http.StatusBadRequest, "page and limit must be numbers"))

		return
	}

	history, err := h.service.History(ctx, payload.UserID, req.Page, req.Limit)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", history))
}

func respondError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidAmount,
		domain.ErrInsufficientBalance,
		domain.ErrServiceNotFound,
		domain.ErrInvalidServiceCode:
		gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err))
		return
	case domain.ErrUserNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
}
