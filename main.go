package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/DedS3t/twoworlds-backend/app/controllers"
	"github.com/DedS3t/twoworlds-backend/pkg/routes"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/platform/cache"
	"github.com/DedS3t/twoworlds-backend/platform/config"
	"github.com/DedS3t/twoworlds-backend/platform/database"
	"github.com/DedS3t/twoworlds-backend/platform/game"
	"github.com/DedS3t/twoworlds-backend/platform/logging"
	"github.com/DedS3t/twoworlds-backend/platform/queries"
	socket "github.com/DedS3t/twoworlds-backend/platform/sockets"
	"github.com/DedS3t/twoworlds-backend/platform/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	reg, err := board.LoadProperties()
	if err != nil {
		log.WithError(err).Fatal("loading board failed")
	}

	var rooms store.Store = store.NewMemoryStore()
	if cfg.Store == "redis" {
		conn, err := cache.CreateRedisConnection(cfg.RedisUrl)
		if err != nil {
			log.WithError(err).Fatal("connecting to redis failed")
		}
		conn.Close()
		pool := cache.CreateRedisPool(cfg.RedisUrl)
		defer pool.Close()
		rooms = store.NewRedisStore(pool)
	}

	var records game.Records
	rc := &controllers.RoomController{}
	if cfg.Postgres {
		db := database.PostgreSQLConnection(database.Options{
			User:     cfg.DbUser,
			Addr:     cfg.DbAddr,
			Password: cfg.DbPassword,
			Database: cfg.DbName,
		})
		defer db.Close()
		if err := database.CreateSchema(context.Background(), db); err != nil {
			log.WithError(err).Fatal("creating schema failed")
		}
		archive := queries.NewRoomRecords(db)
		records = archive
		rc.Archive = archive
	}

	server, err := socket.NewServer(socket.Options{
		Origins:     cfg.CorsOrigins,
		IntentRate:  cfg.IntentRate,
		IntentBurst: cfg.IntentBurst,
	})
	if err != nil {
		log.WithError(err).Fatal("creating socket server failed")
	}
	svc := game.NewService(rooms, reg, server, records, game.Options{
		StepDelay:      cfg.StepDelay,
		AbandonTimeout: cfg.AbandonTimeout,
	})
	server.Bind(svc)
	rc.Service = svc

	go func() {
		if err := server.Serve(); err != nil {
			log.WithError(err).Error("socket server stopped")
		}
	}()
	defer server.Close()
	go func() {
		addr := fmt.Sprintf(":%d", cfg.SocketPort)
		log.WithField("addr", addr).Info("socket.io listening")
		if err := http.ListenAndServe(addr, server.Handler()); err != nil {
			log.WithError(err).Fatal("socket listener stopped")
		}
	}()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CorsOrigins, ","),
		AllowCredentials: true,
	}))
	routes.RoomRoutes(app, rc)

	if err := app.Listen(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
		log.WithError(err).Error("http server stopped")
	}
}
