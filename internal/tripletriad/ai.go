package tripletriad

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Strategy picks a move for a participant without a session.
type Strategy interface {
	ChooseMove(game *entity.Game, playerID string) (int, int, error)
}

// RandomAI picks a random card in hand and a random open cell.
type RandomAI struct {
	intn func(n int) int
}

func NewRandomAI() *RandomAI {
	return &RandomAI{intn: rand.Intn}
}

// ChooseMove - returns a 1-based hand slot and a cell index.
func (that *RandomAI) ChooseMove(game *entity.Game, playerID string) (int, int, error) {
	slots := game.Hands[playerID].AvailableSlots()
	cells := game.Board.OpenCells()

	if len(slots) == 0 || len(cells) == 0 {
		return 0, 0, ErrNoAvailableMoves
	}

	return slots[that.intn(len(slots))], cells[that.intn(len(cells))], nil
}
