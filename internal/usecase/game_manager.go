package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/pkg"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

const DefaultHandSize = 5

type playerResolver interface {
	Resolve(ctx context.Context, name string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

// MatchObserver is told about every match the manager starts and releases.
type MatchObserver interface {
	MatchStarted(ctx context.Context, game *entity.Game)
	MatchFinished(ctx context.Context, result entity.Result)
}

type Options struct {
	TurnTimeout time.Duration
	HandSize    int

	Dealer    tripletriad.Dealer
	Strategy  tripletriad.Strategy
	Scheduler tripletriad.Scheduler

	// Online reports whether a character has a session. Bots are never asked. Nil admits everyone.
	Online func(playerID string) bool

	// Intn picks the first mover.
	Intn func(n int) int
}

// GameManager owns the participant registry: at most one active match per participant.
type GameManager struct {
	mu     sync.Mutex
	active map[string]*tripletriad.Match
	closed bool

	logger    *slog.Logger
	players   playerResolver
	notifier  tripletriad.Notifier
	opts      Options
	observers []MatchObserver
}

func NewGameManager(
	logger *slog.Logger,
	players playerResolver,
	notifier tripletriad.Notifier,
	opts Options,
	observers ...MatchObserver,
) *GameManager {
	if opts.HandSize <= 0 {
		opts.HandSize = DefaultHandSize
	}

	if opts.Dealer == nil {
		opts.Dealer = tripletriad.NewRandomDealer(tripletriad.DefaultMinRank, tripletriad.DefaultMaxRank)
	}

	if opts.Intn == nil {
		opts.Intn = rand.Intn
	}

	return &GameManager{
		active:    make(map[string]*tripletriad.Match),
		logger:    logger.With("component", "game_manager"),
		players:   players,
		notifier:  notifier,
		opts:      opts,
		observers: observers,
	}
}

// Invite - starts a match between the initiator and the entity called targetName.
func (that *GameManager) Invite(ctx context.Context, initiatorID, targetName string) (*tripletriad.Match, error) {
	log := that.logger.With("method", "Invite", "initiator", initiatorID, "target", targetName)

	targetName = strings.TrimSpace(targetName)
	if targetName == "" {
		return nil, apperror.ErrUsage
	}

	initiator, err := that.players.GetByID(ctx, initiatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get initiator: %w", err)
	}

	target, err := that.players.Resolve(ctx, targetName)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrTargetNotFound, targetName)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve target: %w", err)
	}

	if !target.CanPlay() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidTarget, target.Name)
	}

	if !target.IsBot() && target.ID != initiator.ID && that.opts.Online != nil && !that.opts.Online(target.ID) {
		return nil, fmt.Errorf("%w: %s is not connected", apperror.ErrTargetNotFound, target.Name)
	}

	match, game := that.newMatch(initiator, target)

	if err = that.register(match, initiator.ID, target.ID); err != nil {
		return nil, err
	}

	log.Info("match created", "gameID", match.ID())

	for _, observer := range that.observers {
		observer.MatchStarted(ctx, game)
	}

	if err = match.Start(); err != nil {
		that.deregister(match)
		return nil, fmt.Errorf("failed to start match: %w", err)
	}

	return match, nil
}

// RouteCommand - sends a free-form command to the caller's match, or treats it as an invitation
// when the caller is not playing.
func (that *GameManager) RouteCommand(ctx context.Context, callerID, args string) error {
	match := that.ActiveGame(callerID)
	if match == nil {
		_, err := that.Invite(ctx, callerID, args)
		if errors.Is(err, apperror.ErrTargetNotFound) {
			if _, parseErr := tripletriad.ParseAction(args); parseErr == nil {
				return apperror.ErrNoActiveGame
			}
		}

		return err
	}

	action, err := tripletriad.ParseAction(args)
	if err == nil && action.Kind == tripletriad.ActionForfeit {
		return match.Forfeit(callerID)
	}

	if match.CurrentPlayer() != callerID {
		return apperror.ErrNotYourTurn
	}

	if err != nil {
		return err
	}

	return match.Submit(callerID, action.Slot, action.Cell)
}

// ActiveGame - returns the match the participant is registered in, nil when idle.
func (that *GameManager) ActiveGame(participantID string) *tripletriad.Match {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.active[participantID]
}

// Disconnect - terminates the match of a participant whose session dropped.
func (that *GameManager) Disconnect(_ context.Context, participantID string) {
	match := that.ActiveGame(participantID)
	if match == nil {
		return
	}

	name := participantID
	for _, player := range match.Players() {
		if player.ID == participantID {
			name = player.Name
		}
	}

	match.ForceTerminate(name + " has left the game.")
}

// Shutdown - refuses new invitations and terminates every running match.
func (that *GameManager) Shutdown() {
	that.mu.Lock()
	that.closed = true

	matches := make(map[string]*tripletriad.Match, len(that.active))
	for _, match := range that.active {
		matches[match.ID()] = match
	}
	that.mu.Unlock()

	for _, match := range matches {
		match.ForceTerminate("The server is shutting down.")
	}
}

// ActiveCount - returns the number of running matches.
func (that *GameManager) ActiveCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	ids := make(map[string]struct{}, len(that.active))
	for _, match := range that.active {
		ids[match.ID()] = struct{}{}
	}

	return len(ids)
}

// newMatch - deals both hands and flips for the first mover.
func (that *GameManager) newMatch(initiator, target *entity.Player) (*tripletriad.Match, *entity.Game) {
	players := [2]*entity.Player{initiator, target}
	if that.opts.Intn(2) == 1 {
		players[0], players[1] = players[1], players[0]
	}

	hands := [2]entity.Hand{
		entity.NewHand(that.opts.Dealer.Deal(that.opts.HandSize)),
		entity.NewHand(that.opts.Dealer.Deal(that.opts.HandSize)),
	}

	game := entity.NewGame(pkg.GenerateGameID(), players, hands)

	match := tripletriad.NewMatch(that.logger, game, tripletriad.MatchOptions{
		Notifier:    that.notifier,
		Scheduler:   that.opts.Scheduler,
		Strategy:    that.opts.Strategy,
		TurnTimeout: that.opts.TurnTimeout,
		OnFinish:    that.release,
	})

	return match, game
}

// register claims both participants in one critical section.
func (that *GameManager) register(match *tripletriad.Match, initiatorID, targetID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case that.closed:
		return fmt.Errorf("%w: server is shutting down", apperror.ErrGameFinished)
	case that.active[targetID] != nil:
		return apperror.ErrTargetBusy
	case targetID == initiatorID:
		return apperror.ErrSelfPlay
	case that.active[initiatorID] != nil:
		return apperror.ErrAlreadyInGame
	}

	that.active[initiatorID] = match
	that.active[targetID] = match

	return nil
}

func (that *GameManager) deregister(match *tripletriad.Match) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, player := range match.Players() {
		if current, ok := that.active[player.ID]; ok && current.ID() == match.ID() {
			delete(that.active, player.ID)
		}
	}
}

// release runs once per match on every termination path, after the match unlocked itself.
func (that *GameManager) release(result entity.Result) {
	that.mu.Lock()
	for _, player := range result.Players {
		if current, ok := that.active[player.ID]; ok && current.ID() == result.GameID {
			delete(that.active, player.ID)
		}
	}
	that.mu.Unlock()

	that.logger.Info("match released", "method", "release", "gameID", result.GameID, "reason", result.Reason)

	ctx := context.Background()
	for _, observer := range that.observers {
		observer.MatchFinished(ctx, result)
	}
}
