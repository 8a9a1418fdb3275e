// Package middleware provides gin middlewares for authentication and request logging.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/go-petr/pet-wallet/pkg/web"
	"github.com/rs/zerolog"
)

// Authorization header settings.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Errors returned for a missing or malformed authorization header.
var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// AddAuthorization sets the authorization header of r with a fresh token for the user.
func AddAuthorization(
	r *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	userID int64,
	email string,
	duration time.Duration,
) error {
	token, _, err := tokenMaker.CreateToken(userID, email, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores the token
// payload under AuthPayloadKey.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		abort := func(err error) {
			l.Info().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(http.StatusUnauthorized, err))
		}

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			abort(ErrAuthHeaderNotFound)
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			abort(ErrBadAuthHeaderFormat)
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			abort(ErrUnsupportedAuthType)
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			abort(err)
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// Payload returns the token payload stored by AuthMiddleware.
func Payload(gctx *gin.Context) *tokenpkg.Payload {
	return gctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
}
