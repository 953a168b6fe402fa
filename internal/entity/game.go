package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

// Reasons a game ends.
const (
	EndComplete   = "complete"
	EndForfeit    = "forfeit"
	EndTimeout    = "timeout"
	EndTerminated = "terminated"
)

// Game is the aggregate of one match: participants, hands, board and turn order.
type Game struct {
	ID        string          `json:"id"`
	Players   [2]*Player      `json:"players"`
	Hands     map[string]Hand `json:"hands"`
	Board     Board           `json:"board"`
	TurnOrder [2]string       `json:"turn_order"`
	Turn      int             `json:"turn"`
	Status    string          `json:"status"`
}

// Result is the outcome of a finished game.
type Result struct {
	GameID    string         `json:"game_id"`
	Reason    string         `json:"reason"`
	Players   [2]*Player     `json:"players"`
	Scores    map[string]int `json:"scores,omitempty"`
	Winner    string         `json:"winner,omitempty"`
	Tie       bool           `json:"tie,omitempty"`
	Forfeiter string         `json:"forfeiter,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// NewGame - creates a waiting game. The first player in players moves first.
func NewGame(id string, players [2]*Player, hands [2]Hand) *Game {
	return &Game{
		ID:      id,
		Players: players,
		Hands: map[string]Hand{
			players[0].ID: hands[0],
			players[1].ID: hands[1],
		},
		TurnOrder: [2]string{players[0].ID, players[1].ID},
		Status:    StatusWaiting,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return nil
	}
}

func (that *Game) CurrentPlayer() string {
	return that.TurnOrder[0]
}

// Player - returns the participant with the given id or nil.
func (that *Game) Player(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// Opponent - returns the other participant's id.
func (that *Game) Opponent(id string) string {
	if that.Players[0].ID == id {
		return that.Players[1].ID
	}

	return that.Players[0].ID
}

// SwapTurn - rotates the turn order after a completed turn.
func (that *Game) SwapTurn() {
	that.TurnOrder[0], that.TurnOrder[1] = that.TurnOrder[1], that.TurnOrder[0]
}

// Score - cards left in hand plus cells controlled.
func (that *Game) Score(playerID string) int {
	return that.Hands[playerID].Remaining() + that.Board.ControlledBy(playerID)
}

// Outcome - the higher score wins, equal scores tie.
func (that *Game) Outcome() (string, bool) {
	first, second := that.Players[0].ID, that.Players[1].ID

	switch a, b := that.Score(first), that.Score(second); {
	case a > b:
		return first, false
	case b > a:
		return second, false
	default:
		return "", true
	}
}

// ValidateMove - checks a move against the current state without changing it.
func (that *Game) ValidateMove(playerID string, slot, cell int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Player(playerID) == nil {
		return apperror.ErrNotParticipant
	}

	if that.CurrentPlayer() != playerID {
		return apperror.ErrNotYourTurn
	}

	if _, err := that.Hands[playerID].Card(slot); err != nil {
		return err
	}

	if cell < 0 || cell >= BoardCellCount {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardCell, cell)
	}

	if that.Board.IsOccupied(cell) {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, CellName(cell))
	}

	return nil
}

// PlaceCard - moves the current player's card from slot onto cell and resolves captures.
func (that *Game) PlaceCard(slot, cell int) ([]int, error) {
	player := that.CurrentPlayer()

	if err := that.ValidateMove(player, slot, cell); err != nil {
		return nil, err
	}

	card, err := that.Hands[player].Take(slot)
	if err != nil {
		return nil, err
	}

	captured, err := that.Board.Place(cell, card, player)
	if err != nil {
		return nil, fmt.Errorf("failed to place card: %w", err)
	}

	return captured, nil
}
