package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/matryer/way"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	PlayerStatsHandler(w http.ResponseWriter, r *http.Request)
	GameResultHandler(w http.ResponseWriter, r *http.Request)
}

type directory interface {
	Resolve(ctx context.Context, name string) (*entity.Player, error)
}

type statsService interface {
	Stats(ctx context.Context, playerID string) (*entity.Stats, error)
	Result(ctx context.Context, gameID string) (*entity.Result, error)
}

type handlers struct {
	logger  *slog.Logger
	players directory
	stats   statsService
}

func NewHandlers(logger *slog.Logger, players directory, stats statsService) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		players: players,
		stats:   stats,
	}
}

type statsResponse struct {
	Name string `json:"name"`
	*entity.Stats
}

// PlayerStatsHandler - GET /players/:name/stats.
func (that *handlers) PlayerStatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "PlayerStatsHandler")

	player, err := that.players.Resolve(r.Context(), way.Param(r.Context(), "name"))
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to resolve player", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	stats, err := that.stats.Stats(r.Context(), player.ID)
	if err != nil {
		log.Error("failed to load stats", "player", player.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, statsResponse{Name: player.Name, Stats: stats})
}

// GameResultHandler - GET /games/:id.
func (that *handlers) GameResultHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GameResultHandler")

	result, err := that.stats.Result(r.Context(), way.Param(r.Context(), "id"))
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to load result", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, result)
}

func (that *handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "method", "writeJSON", "error", err)
	}
}
