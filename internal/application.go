package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tripletriad-backend/internal/command"
	"github.com/rocketscienceinc/tripletriad-backend/internal/config"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/hub"
	"github.com/rocketscienceinc/tripletriad-backend/internal/metrics"
	"github.com/rocketscienceinc/tripletriad-backend/internal/repository"
	"github.com/rocketscienceinc/tripletriad-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tripletriad-backend/internal/service"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
	"github.com/rocketscienceinc/tripletriad-backend/internal/usecase"
	natstransport "github.com/rocketscienceinc/tripletriad-backend/transport/nats"
	"github.com/rocketscienceinc/tripletriad-backend/transport/rest"
	"github.com/rocketscienceinc/tripletriad-backend/transport/telnet"
	"github.com/rocketscienceinc/tripletriad-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	attributeRepo := repository.NewAttributeRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)

	playerService := service.NewPlayerService(playerRepo)
	statsService := service.NewStatsService(logger, attributeRepo, gameRepo)

	if err = playerService.Seed(ctx, npcs(conf.NPCs)); err != nil {
		return fmt.Errorf("could not seed npcs: %w", err)
	}

	appMetrics := metrics.New()
	observers := []usecase.MatchObserver{statsService, appMetrics}

	if conf.NATS.Enabled() {
		publisher, natsErr := natstransport.Connect(logger, conf.NATS.URL, conf.NATS.Subject)
		if natsErr != nil {
			return fmt.Errorf("could not connect to nats: %w", natsErr)
		}

		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				log.Error("could not close nats connection", "error", closeErr)
			}
		}()

		observers = append(observers, publisher)
	}

	sessions := hub.New(logger)

	gameManager := usecase.NewGameManager(logger, playerService, sessions, usecase.Options{
		TurnTimeout: conf.Game.TurnTimeout,
		HandSize:    conf.Game.HandSize,
		Dealer:      tripletriad.NewRandomDealer(conf.Game.MinRank, conf.Game.MaxRank),
		Online:      sessions.Online,
	}, observers...)
	defer gameManager.Shutdown()

	dispatcher := command.NewDispatcher(logger, gameManager, statsService, playerService, sessions, sessions, appMetrics)
	gateway := command.NewGateway(logger, playerService, sessions, gameManager, dispatcher, appMetrics)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(rest.NewHandlers(logger, playerService, statsService), appMetrics.Handler())
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gateway)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	// run Telnet server
	telnetErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting Telnet server", "port", conf.TelnetPort)
		telnetServer := telnet.New(logger, gateway)
		if telnetErr := telnetServer.Start(ctx, conf.TelnetPort); telnetErr != nil {
			log.Error("Telnet server error", "error", telnetErr)
			telnetErrCh <- telnetErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case err = <-telnetErrCh:
		return fmt.Errorf("Telnet server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func npcs(configured []config.NPC) []entity.Player {
	players := make([]entity.Player, len(configured))
	for i, npc := range configured {
		players[i] = entity.Player{
			Name: npc.Name,
			Kind: npc.Kind,
			Bot:  npc.Bot,
		}
	}

	return players
}
