package tripletriad

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

const DefaultTurnTimeout = 2 * time.Minute

const msgInaction = "Game has ended due to inaction."

// MatchOptions wires a Match to its collaborators.
type MatchOptions struct {
	Notifier    Notifier
	Scheduler   Scheduler
	Strategy    Strategy
	TurnTimeout time.Duration

	// OnFinish runs once, after the match released its lock, on every termination path.
	OnFinish func(result entity.Result)
}

// Match runs one game: it owns the state, serialises transitions and arms the turn timer.
type Match struct {
	mu sync.Mutex

	logger *slog.Logger
	game   *entity.Game

	notifier    Notifier
	scheduler   Scheduler
	strategy    Strategy
	turnTimeout time.Duration
	onFinish    func(result entity.Result)

	timer  Timer
	result *entity.Result
}

func NewMatch(logger *slog.Logger, game *entity.Game, opts MatchOptions) *Match {
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}

	if opts.Strategy == nil {
		opts.Strategy = NewRandomAI()
	}

	if opts.TurnTimeout <= 0 {
		opts.TurnTimeout = DefaultTurnTimeout
	}

	return &Match{
		logger:      logger.With("component", "match", "gameID", game.ID),
		game:        game,
		notifier:    opts.Notifier,
		scheduler:   opts.Scheduler,
		strategy:    opts.Strategy,
		turnTimeout: opts.TurnTimeout,
		onFinish:    opts.OnFinish,
	}
}

func (that *Match) ID() string {
	return that.game.ID
}

// Players - returns both participants.
func (that *Match) Players() [2]*entity.Player {
	return that.game.Players
}

func (that *Match) CurrentPlayer() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.CurrentPlayer()
}

// Result - returns the outcome once the match is finished.
func (that *Match) Result() (entity.Result, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.result == nil {
		return entity.Result{}, false
	}

	return *that.result, true
}

// Start - enters the ongoing state and begins the first turn.
func (that *Match) Start() error {
	that.mu.Lock()

	if !that.game.IsWaiting() {
		that.mu.Unlock()
		return fmt.Errorf("%w: status %s", apperror.ErrGameFinished, that.game.Status)
	}

	that.game.Status = entity.StatusOngoing
	that.logger.Info("match started",
		"first", that.game.TurnOrder[0],
		"second", that.game.TurnOrder[1],
	)

	result := that.beginTurn()
	that.mu.Unlock()

	that.release(result)

	return nil
}

// Submit - validates a move from playerID and, when legal, applies it.
// A rejected move leaves the state untouched and the same player may retry.
func (that *Match) Submit(playerID string, slot, cell int) error {
	that.mu.Lock()

	if err := that.game.ValidateMove(playerID, slot, cell); err != nil {
		that.mu.Unlock()
		return err
	}

	result := that.advanceTurn(Move(playerID, slot, cell))
	that.mu.Unlock()

	that.release(result)

	return nil
}

// Forfeit - ends the match at the request of a participant.
func (that *Match) Forfeit(playerID string) error {
	that.mu.Lock()

	if err := that.game.ConfirmOngoingState(); err != nil {
		that.mu.Unlock()
		return err
	}

	if that.game.Player(playerID) == nil {
		that.mu.Unlock()
		return apperror.ErrNotParticipant
	}

	result := that.advanceTurn(Forfeit(playerID))
	that.mu.Unlock()

	that.release(result)

	return nil
}

// ForceTerminate - ends the match from outside the game, announcing reason to both participants.
// It is a no-op on a finished match.
func (that *Match) ForceTerminate(reason string) {
	that.mu.Lock()

	if that.game.IsFinished() {
		that.mu.Unlock()
		return
	}

	result := that.advanceTurn(Terminate(reason))
	that.mu.Unlock()

	that.release(result)
}

func (that *Match) handleTimeout(turn int) {
	that.mu.Lock()

	if !that.game.IsOngoing() || that.game.Turn != turn {
		that.mu.Unlock()
		return
	}

	result := that.advanceTurn(Timeout(turn))
	that.mu.Unlock()

	that.release(result)
}

// advanceTurn is the single state transition of the match. It expects the caller to hold the lock
// and a legal move. It returns the result when the event ended the match.
func (that *Match) advanceTurn(event Event) *entity.Result {
	log := that.logger.With("method", "advanceTurn", "event", event.Kind.String(), "turn", that.game.Turn)

	switch event.Kind {
	case EventMove:
		that.stopTimer()

		if err := that.applyMove(event.Slot, event.Cell); err != nil {
			log.Error("failed to apply move", "error", err)
			return that.abort(that.nameOf(event.Player), err)
		}

		if that.game.Board.IsFull() {
			return that.complete()
		}

		that.game.SwapTurn()

		return that.beginTurn()

	case EventTimeout:
		log.Info("turn timed out", "player", that.game.CurrentPlayer())
		that.msgAll(msgInaction)

		return that.finish(entity.Result{Reason: entity.EndTimeout, Message: msgInaction})

	case EventForfeit:
		message := that.nameOf(event.Player) + " has forfeited the game."
		that.msgAll(message)

		return that.finish(entity.Result{Reason: entity.EndForfeit, Forfeiter: event.Player, Message: message})

	case EventTerminate:
		that.msgAll(event.Reason)

		return that.finish(entity.Result{Reason: entity.EndTerminated, Message: event.Reason})

	default:
		log.Error("unknown event")
		return nil
	}
}

// beginTurn - shows the board and either plays the AI inline or arms the turn timer.
func (that *Match) beginTurn() *entity.Result {
	that.game.Turn++
	current := that.game.Player(that.game.CurrentPlayer())

	if current.IsBot() {
		slot, cell, err := that.strategy.ChooseMove(that.game, current.ID)
		if err == nil {
			err = that.game.ValidateMove(current.ID, slot, cell)
		}

		if err != nil {
			that.logger.Error("AI failed to choose a move", "player", current.ID, "error", err)
			return that.abort(current.Name, err)
		}

		return that.advanceTurn(Move(current.ID, slot, cell))
	}

	that.showBoards("")
	that.armTimer()

	return nil
}

// abort - ends the match when a move chosen by the server cannot be played.
func (that *Match) abort(name string, err error) *entity.Result {
	that.msgAll(name + " could not make a move.")

	return that.finish(entity.Result{Reason: entity.EndTerminated, Message: err.Error()})
}

func (that *Match) applyMove(slot, cell int) error {
	mover := that.game.CurrentPlayer()

	captured, err := that.game.PlaceCard(slot, cell)
	if err != nil {
		return err
	}

	that.msgAll(describeMove(that.nameOf(mover), cell, captured))

	return nil
}

// complete - scores a full board and announces the result.
func (that *Match) complete() *entity.Result {
	winner, tie := that.game.Outcome()

	result := entity.Result{
		Reason: entity.EndComplete,
		Scores: map[string]int{},
		Winner: winner,
		Tie:    tie,
	}
	for _, player := range that.game.Players {
		result.Scores[player.ID] = that.game.Score(player.ID)
	}

	that.showBoards(TitleGameOver)

	if tie {
		result.Message = "The match was a tie."
	} else {
		result.Message = that.nameOf(winner) + " has won the match."
	}
	that.msgAll(result.Message)

	return that.finish(result)
}

func (that *Match) finish(result entity.Result) *entity.Result {
	that.stopTimer()

	that.game.Status = entity.StatusFinished
	result.GameID = that.game.ID
	result.Players = that.game.Players
	that.result = &result

	that.logger.Info("match finished", "reason", result.Reason, "winner", result.Winner, "tie", result.Tie)

	return that.result
}

func (that *Match) release(result *entity.Result) {
	if result == nil || that.onFinish == nil {
		return
	}

	that.onFinish(*result)
}

func (that *Match) armTimer() {
	that.stopTimer()

	turn := that.game.Turn
	that.timer = that.scheduler.AfterFunc(that.turnTimeout, func() {
		that.handleTimeout(turn)
	})
}

func (that *Match) stopTimer() {
	if that.timer != nil {
		that.timer.Stop()
		that.timer = nil
	}
}

func (that *Match) showBoards(title string) {
	for _, player := range that.game.Players {
		that.notify(player.ID, Notice{View: BuildView(that.game, player.ID, title)})
	}
}

func (that *Match) msgAll(text string) {
	for _, player := range that.game.Players {
		that.notify(player.ID, Notice{Text: text})
	}
}

func (that *Match) notify(playerID string, notice Notice) {
	if that.notifier == nil {
		return
	}

	if player := that.game.Player(playerID); player != nil && player.IsBot() {
		return
	}

	that.notifier.Notify(playerID, notice)
}

func (that *Match) nameOf(playerID string) string {
	if player := that.game.Player(playerID); player != nil {
		return player.Name
	}

	return playerID
}

func describeMove(name string, cell int, captured []int) string {
	text := fmt.Sprintf("%s plays a card to %s.", name, strings.ToUpper(entity.CellName(cell)))
	if len(captured) == 0 {
		return text
	}

	names := make([]string, len(captured))
	for i, index := range captured {
		names[i] = strings.ToUpper(entity.CellName(index))
	}

	return fmt.Sprintf("%s Captured %s.", text, strings.Join(names, ", "))
}
