package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

const (
	VerbTripleTriad = "tripletriad"
	VerbStats       = "stats"
	VerbWho         = "who"
	VerbHelp        = "help"
)

const (
	msgUsage   = "Usage: tripletriad <name> | tripletriad <slot> to <cell> | tripletriad forfeit"
	msgUnknown = "Unknown command. Type 'help' for a list of commands."
	msgFailure = "Something went wrong, please try again."

	helpText = `Commands:
  tripletriad <name>            challenge someone to a game (aliases: tt, play)
  tripletriad <slot> to <cell>  play a card from your hand, e.g. "tt 2 to b3"
  tripletriad forfeit           give up the current game
  stats [name]                  show a Triple Triad record
  who                           list connected players
  quit                          disconnect`
)

var aliases = map[string]string{
	"tripletriad": VerbTripleTriad,
	"tt":          VerbTripleTriad,
	"play":        VerbTripleTriad,
	"stats":       VerbStats,
	"who":         VerbWho,
	"help":        VerbHelp,
	"?":           VerbHelp,
}

// replies maps the error taxonomy to what the caller is told.
var replies = []struct {
	err  error
	text string
}{
	{apperror.ErrUsage, msgUsage},
	{apperror.ErrTargetNotFound, "Could not find anyone by that name."},
	{apperror.ErrInvalidTarget, "You can't play Triple Triad with that."},
	{apperror.ErrTargetBusy, "They are already playing a game."},
	{apperror.ErrSelfPlay, "You can't play against yourself."},
	{apperror.ErrAlreadyInGame, "You are already playing a game."},
	{apperror.ErrNotYourTurn, "It's not your turn."},
	{apperror.ErrInvalidHandSlot, "That is not a card in your hand."},
	{apperror.ErrSlotAlreadyPlayed, "You have already played that card."},
	{apperror.ErrInvalidBoardCell, "That is not a cell on the board. Cells are a1 to c3."},
	{apperror.ErrCellOccupied, "That cell is already occupied."},
	{apperror.ErrGameFinished, "That game is already over."},
	{apperror.ErrGameIsNotStarted, "The game has not started yet."},
	{apperror.ErrNoActiveGame, "You are not playing a game."},
	{apperror.ErrNotParticipant, "You are not playing that game."},
	{apperror.ErrPlayerNotFound, "Could not find anyone by that name."},
}

type gameRouter interface {
	RouteCommand(ctx context.Context, callerID, args string) error
}

type statsReader interface {
	Stats(ctx context.Context, playerID string) (*entity.Stats, error)
}

type directory interface {
	Resolve(ctx context.Context, name string) (*entity.Player, error)
}

type presence interface {
	Connected() []*entity.Player
}

type recorder interface {
	CommandProcessed(verb string)
}

// Dispatcher turns a line of player input into a call on the game layer. Replies go through the
// notifier so they share the session's outbox with game notices.
type Dispatcher struct {
	logger   *slog.Logger
	games    gameRouter
	stats    statsReader
	players  directory
	presence presence
	notifier tripletriad.Notifier
	recorder recorder
}

func NewDispatcher(
	logger *slog.Logger,
	games gameRouter,
	stats statsReader,
	players directory,
	presence presence,
	notifier tripletriad.Notifier,
	recorder recorder,
) *Dispatcher {
	return &Dispatcher{
		logger:   logger.With("component", "dispatcher"),
		games:    games,
		stats:    stats,
		players:  players,
		presence: presence,
		notifier: notifier,
		recorder: recorder,
	}
}

// Execute - runs one line of input for caller.
func (that *Dispatcher) Execute(ctx context.Context, caller *entity.Player, line string) {
	word, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	if word == "" {
		return
	}

	verb, ok := aliases[strings.ToLower(word)]
	if !ok {
		that.reply(caller, msgUnknown)
		return
	}

	if that.recorder != nil {
		that.recorder.CommandProcessed(verb)
	}

	args = strings.TrimSpace(args)

	var err error
	switch verb {
	case VerbTripleTriad:
		err = that.games.RouteCommand(ctx, caller.ID, args)
	case VerbStats:
		err = that.showStats(ctx, caller, args)
	case VerbWho:
		that.showWho(caller)
	case VerbHelp:
		that.reply(caller, helpText)
	}

	if err != nil {
		that.reply(caller, that.describe(caller, verb, err))
	}
}

func (that *Dispatcher) showStats(ctx context.Context, caller *entity.Player, name string) error {
	player := caller
	if name != "" {
		resolved, err := that.players.Resolve(ctx, name)
		if err != nil {
			return err
		}
		player = resolved
	}

	stats, err := that.stats.Stats(ctx, player.ID)
	if err != nil {
		return err
	}

	that.reply(caller, FormatStats(player.Name, stats))

	return nil
}

func (that *Dispatcher) showWho(caller *entity.Player) {
	players := that.presence.Connected()

	names := make([]string, len(players))
	for i, player := range players {
		names[i] = player.Name
	}

	that.reply(caller, fmt.Sprintf("Players online (%d): %s", len(names), strings.Join(names, ", ")))
}

func (that *Dispatcher) reply(caller *entity.Player, text string) {
	that.notifier.Notify(caller.ID, tripletriad.Notice{Text: text})
}

func (that *Dispatcher) describe(caller *entity.Player, verb string, err error) string {
	for _, reply := range replies {
		if errors.Is(err, reply.err) {
			return reply.text
		}
	}

	that.logger.Error("command failed", "method", "Execute", "player", caller.ID, "verb", verb, "error", err)

	return msgFailure
}

// FormatStats - one line summary of a record.
func FormatStats(name string, stats *entity.Stats) string {
	return fmt.Sprintf("%s: played %d, won %d, lost %d, tied %d, forfeited %d, abandoned %d.",
		name, stats.Played, stats.Wins, stats.Losses, stats.Ties, stats.Forfeits, stats.Abandoned)
}
