// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-wallet/internal/balancedelivery"
	"github.com/go-petr/pet-wallet/internal/balancerepo"
	"github.com/go-petr/pet-wallet/internal/balanceservice"
	"github.com/go-petr/pet-wallet/internal/bannerrepo"
	"github.com/go-petr/pet-wallet/internal/cacherepo"
	"github.com/go-petr/pet-wallet/internal/infodelivery"
	"github.com/go-petr/pet-wallet/internal/infoservice"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/internal/servicerepo"
	"github.com/go-petr/pet-wallet/internal/transactiondelivery"
	"github.com/go-petr/pet-wallet/internal/transactionrepo"
	"github.com/go-petr/pet-wallet/internal/transactionservice"
	"github.com/go-petr/pet-wallet/internal/userdelivery"
	"github.com/go-petr/pet-wallet/internal/userrepo"
	"github.com/go-petr/pet-wallet/internal/userservice"
	"github.com/go-petr/pet-wallet/pkg/configpkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

// CachePrefix namespaces every Redis key written by the server.
const CachePrefix = "wallet:"

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker
	FS         afero.Fs
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
//
// rdb may be nil, then banners and services are read from the database on every
// request. Uploaded files are written to and served from config.UploadDir on fs.
func New(conn *sql.DB, rdb *redis.Client, fs afero.Fs, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	// amounts are rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	tokenMaker, err := tokenpkg.NewMaker(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userRepo := userrepo.NewRepoPGS(conn)
	balanceRepo := balancerepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	bannerRepo := bannerrepo.NewRepoPGS(conn)
	serviceRepo := servicerepo.NewRepoPGS(conn)

	var cache infoservice.Cache
	if rdb != nil {
		cache = cacherepo.NewRepoRedis(rdb, CachePrefix)
	}

	userService := userservice.New(userRepo, tokenMaker, fs, userservice.Config{
		TokenDuration: config.AccessTokenDuration,
		PublicURL:     config.AppURL,
		ProfileDir:    filepath.Join(config.UploadDir, "profiles"),
	})
	balanceService := balanceservice.New(balanceRepo)
	transactionService := transactionservice.New(transactionRepo)
	infoService := infoservice.New(bannerRepo, serviceRepo, cache, config.AppURL, config.CacheTTL)

	userHandler := userdelivery.NewHandler(userService)
	balanceHandler := balancedelivery.NewHandler(balanceService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	infoHandler := infodelivery.NewHandler(infoService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("servicecode", transactiondelivery.ValidServiceCode)
		if err != nil {
			return nil, errors.New("cannot register service code validator")
		}
	}

	engine := gin.New()
	engine.ContextWithFallback = true

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		if err := conn.PingContext(gctx.Request.Context()); err != nil {
			zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Msg("database ping failed")
			gctx.JSON(http.StatusServiceUnavailable,
				web.Message(http.StatusServiceUnavailable, "database unavailable"))

			return
		}

		gctx.JSON(http.StatusOK, web.Success("ok", nil))
	})

	engine.StaticFS("/uploads", afero.NewHttpFs(fs).Dir(config.UploadDir))

	engine.POST("/registration", userHandler.Register)
	engine.POST("/login", userHandler.Login)
	engine.GET("/banner", infoHandler.ListBanners)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/profile", userHandler.GetProfile)
	authRoutes.PUT("/profile/update", userHandler.UpdateProfile)
	authRoutes.PUT("/profile/image", userHandler.UpdateProfileImage)

	authRoutes.GET("/services", infoHandler.ListServices)

	authRoutes.GET("/balance", balanceHandler.Get)
	authRoutes.POST("/topup", transactionHandler.TopUp)
	authRoutes.POST("/transaction", transactionHandler.Pay)
	authRoutes.GET("/transaction/history", transactionHandler.History)

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
		FS:         fs,
	}

	return server, nil
}
