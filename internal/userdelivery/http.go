// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/internal/userservice"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/web"
	"github.com/rs/zerolog"
)

// ImageFormField is the multipart field holding the profile image.
const ImageFormField = "file"

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Register(ctx context.Context, arg userservice.RegisterParams) (domain.Profile, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, id int64) (domain.Profile, error)
	UpdateProfile(ctx context.Context, arg domain.UpdateUserParams) (domain.Profile, error)
	UpdateProfileImage(ctx context.Context, id int64, image []byte) (domain.Profile, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns user handler.
func NewHandler(us Service) *Handler {
	return &Handler{
		service: us,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string `json:"last_name" binding:"required,min=2,max=100"`
	Password  string `json:"password" binding:"required,min=8"`
}

// Register handles http request to register a user.
func (h *Handler) Register(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req registerRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest,
			web.Message(http.StatusBadRequest, web.ValidationMessage(err, "invalid request body")))

		return
	}

	_, err := h.service.Register(ctx, userservice.RegisterParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch err {
		case domain.ErrEmailAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(http.StatusConflict, err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Registration succeeded, please log in", nil))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles http login request and returns an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest,
			web.Message(http.StatusBadRequest, web.ValidationMessage(err, "invalid request body")))

		return
	}

	token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrWrongCredentials:
			gctx.JSON(http.StatusUnauthorized, web.Error(http.StatusUnauthorized, err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success("Login succeeded", loginResponse{Token: token}))
}

// GetProfile handles http request to get the profile of the authenticated user.
func (h *Handler) GetProfile(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	payload := middleware.Payload(gctx)

	profile, err := h.service.GetProfile(ctx, payload.UserID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Success", profile))
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,min=2,max=100"`
}

// UpdateProfile handles http request to change the name of the authenticated user.
func (h *Handler) UpdateProfile(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	payload := middleware.Payload(gctx)

	var req updateProfileRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest,
			web.Message(http.StatusBadRequest, web.ValidationMessage(err, "invalid request body")))

		return
	}

	profile, err := h.service.UpdateProfile(ctx, domain.UpdateUserParams{
		ID:        payload.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Profile updated", profile))
}

// UpdateProfileImage handles multipart upload of the profile image of the authenticated user.
func (h *Handler) UpdateProfileImage(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)
	payload := middleware.Payload(gctx)

	gctx.Request.Body = http.MaxBytesReader(gctx.Writer, gctx.Request.Body, userservice.MaxImageSize+1<<20)

	fh, err := gctx.FormFile(ImageFormField)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Message(http.StatusBadRequest, "file is required"))

		return
	}

	if fh.Size > userservice.MaxImageSize {
		gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, domain.ErrInvalidImage))
		return
	}

	f, err := fh.Open()
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	profile, err := h.service.UpdateProfileImage(ctx, payload.UserID, image)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success("Profile image updated", profile))
}

func respondError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrUserNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(http.StatusNotFound, err))
		return
	case domain.ErrInvalidImage:
		gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
}
