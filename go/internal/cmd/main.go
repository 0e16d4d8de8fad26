package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/quizclash/quizclash/go/internal/dbconfig"
	"github.com/quizclash/quizclash/go/internal/game"
	"github.com/quizclash/quizclash/go/internal/game/gateway"
	"github.com/quizclash/quizclash/go/internal/game/relay"
	"github.com/quizclash/quizclash/go/internal/game/session"
	"github.com/quizclash/quizclash/go/internal/questions"
	"github.com/quizclash/quizclash/go/internal/rooms"
	"github.com/quizclash/quizclash/go/internal/stats"
	"github.com/quizclash/quizclash/go/internal/users"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbCfg := dbconfig.NewConfigFromEnv()
	pool, err := dbconfig.Connect(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	log.Info().
		Str("database", dbCfg.Database).
		Str("port", cfg.Server.Port).
		Msg("starting trivia server")

	// Apps
	roomsApp := rooms.NewApp(rooms.NewRepository(pool))
	usersApp := users.NewApp(users.NewRepository(pool))
	questionsApp := questions.NewApp(questions.NewRepository(pool))
	statsApp := stats.NewApp(stats.NewRepository(pool))

	// Optional NATS event mirror
	var sink session.EventSink
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		relayCfg := relay.DefaultConfig()
		relayCfg.URL = natsURL
		r, err := relay.New(relayCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect event relay")
		}
		defer r.Close()
		sink = r
	}

	// Game core
	registry := session.NewRegistry(cfg.sessionConfig(), clockwork.NewRealClock(), session.Deps{
		Questions:   questionsApp,
		Persistence: statsApp,
		Rooms:       roomsApp,
	}, sink)
	gameApp := game.NewApp(roomsApp, usersApp, registry)

	// Transport
	connManager := gateway.NewConnectionManager(gameApp, gateway.DefaultConnectionConfig())
	wsHandler := gateway.NewWebSocketHandler(connManager)

	router := chi.NewRouter()
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Trivia Game Server Running"))
	})
	rooms.NewService(roomsApp).RegisterRoutes(router)
	questions.NewService(questionsApp).RegisterRoutes(router)
	wsHandler.RegisterRoutes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	server := &http.Server{
		Handler: corsHandler.Handler(router),
	}

	listener, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Server.Port).Msg("failed to listen")
	}
	listener = netutil.LimitListener(listener, cfg.Server.MaxConns)

	log.Info().Str("port", cfg.Server.Port).Msg("server listening")
	runServer(ctx, server, listener)
}

// runServer serves until the context is cancelled or the server fails,
// then shuts down gracefully. It returns rather than exiting so main's
// deferred cleanup (pool, relay) still runs on a serve error.
func runServer(ctx context.Context, server *http.Server, listener net.Listener) {
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
