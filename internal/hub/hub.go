package hub

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

// Conn is the write side of a session. Deliver must not block.
type Conn interface {
	Deliver(notice tripletriad.Notice) bool
}

type session struct {
	player *entity.Player
	conn   Conn
}

// Hub maps a character to its single live session.
type Hub struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	sessions map[string]session
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		sessions: make(map[string]session),
	}
}

// Attach - binds conn to the player. A character has at most one session.
func (that *Hub) Attach(player *entity.Player, conn Conn) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[player.ID]; ok {
		return apperror.ErrAlreadyConnected
	}

	that.sessions[player.ID] = session{player: player, conn: conn}

	return nil
}

// Detach - removes the session if conn is still the one attached.
func (that *Hub) Detach(playerID string, conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.sessions[playerID]; ok && current.conn == conn {
		delete(that.sessions, playerID)
	}
}

// Notify - fire and forget. A missing session or a full outbox drops the notice.
func (that *Hub) Notify(playerID string, notice tripletriad.Notice) {
	that.mu.RLock()
	current, ok := that.sessions[playerID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Debug("dropping notice for offline player", "method", "Notify", "player", playerID)
		return
	}

	if !current.conn.Deliver(notice) {
		that.logger.Debug("dropping notice, outbox is full", "method", "Notify", "player", playerID)
	}
}

func (that *Hub) Online(playerID string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.sessions[playerID]

	return ok
}

// Connected - returns connected characters sorted by name.
func (that *Hub) Connected() []*entity.Player {
	that.mu.RLock()
	players := make([]*entity.Player, 0, len(that.sessions))
	for _, current := range that.sessions {
		players = append(players, current.player)
	}
	that.mu.RUnlock()

	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	return players
}
