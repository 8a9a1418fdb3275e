// Package main starts the wallet API: users, balances, top-ups, payments and the
// transaction history.
package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-wallet/cmd/httpserver"
	"github.com/go-petr/pet-wallet/db/migration"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/configpkg"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err = dbpkg.Migrate(db, migration.FS, migration.Dir); err != nil {
		logger.Fatal().Err(err).Msg("cannot migrate database")
	}

	var rdb *redis.Client

	if config.RedisAddr != "" {
		rdb, err = dbpkg.SetupRedis(context.Background(), config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			logger.Warn().Err(err).Msg("redis is unavailable, continuing without cache")
		}
	}

	if config.Environement != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(db, rdb, afero.NewOsFs(), logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("WALLET API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
