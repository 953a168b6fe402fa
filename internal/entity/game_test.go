package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
)

func newTestGame() *Game {
	cards := func(rank int) []Card {
		return []Card{*flatCard(rank), *flatCard(rank), *flatCard(rank), *flatCard(rank), *flatCard(rank)}
	}

	game := NewGame("123",
		[2]*Player{{ID: "A", Name: "Alice", Kind: KindCharacter}, {ID: "B", Name: "Bob", Kind: KindCharacter}},
		[2]Hand{NewHand(cards(5)), NewHand(cards(5))},
	)
	game.Status = StatusOngoing

	return game
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("ConfirmOngoingState follows the status", func(t *testing.T) {
		assert.ErrorIs(t, (&Game{Status: StatusWaiting}).ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
		assert.ErrorIs(t, (&Game{Status: StatusFinished}).ConfirmOngoingState(), apperror.ErrGameFinished)
		assert.NoError(t, (&Game{Status: StatusOngoing}).ConfirmOngoingState())
	})

	t.Run("NewGame starts waiting with the first player to move", func(t *testing.T) {
		game := NewGame("1",
			[2]*Player{{ID: "A"}, {ID: "B"}},
			[2]Hand{NewHand(nil), NewHand(nil)},
		)

		assert.True(t, game.IsWaiting())
		assert.Equal(t, "A", game.CurrentPlayer())
		assert.Equal(t, "B", game.Opponent("A"))
		assert.Equal(t, "A", game.Opponent("B"))
	})
}

func TestGame_ValidateMove(t *testing.T) {
	t.Run("Rejects a move out of turn", func(t *testing.T) {
		game := newTestGame()
		assert.ErrorIs(t, game.ValidateMove("B", 1, 0), apperror.ErrNotYourTurn)
	})

	t.Run("Rejects a stranger", func(t *testing.T) {
		game := newTestGame()
		assert.ErrorIs(t, game.ValidateMove("C", 1, 0), apperror.ErrNotParticipant)
	})

	t.Run("Rejects bad slots and cells", func(t *testing.T) {
		game := newTestGame()

		assert.ErrorIs(t, game.ValidateMove("A", 0, 0), apperror.ErrInvalidHandSlot)
		assert.ErrorIs(t, game.ValidateMove("A", 6, 0), apperror.ErrInvalidHandSlot)
		assert.ErrorIs(t, game.ValidateMove("A", 1, -1), apperror.ErrInvalidBoardCell)
		assert.ErrorIs(t, game.ValidateMove("A", 1, 9), apperror.ErrInvalidBoardCell)
	})

	t.Run("Rejects a played slot and an occupied cell", func(t *testing.T) {
		// Given: A played slot 1 to a1, B played slot 1 to b1, back to A
		game := newTestGame()
		_, err := game.PlaceCard(1, 0)
		require.NoError(t, err)
		game.SwapTurn()
		_, err = game.PlaceCard(1, 1)
		require.NoError(t, err)
		game.SwapTurn()

		// Then: A can reuse neither slot 1 nor a1
		assert.ErrorIs(t, game.ValidateMove("A", 1, 4), apperror.ErrSlotAlreadyPlayed)
		assert.ErrorIs(t, game.ValidateMove("A", 2, 0), apperror.ErrCellOccupied)
		assert.NoError(t, game.ValidateMove("A", 2, 4))
	})

	t.Run("Rejects moves in a finished game", func(t *testing.T) {
		game := newTestGame()
		game.Status = StatusFinished
		assert.ErrorIs(t, game.ValidateMove("A", 1, 0), apperror.ErrGameFinished)
	})
}

func TestGame_PlaceCard(t *testing.T) {
	t.Run("Moves exactly one card from hand to board", func(t *testing.T) {
		game := newTestGame()

		_, err := game.PlaceCard(3, 4)

		require.NoError(t, err)
		assert.Nil(t, game.Hands["A"][2])
		assert.Equal(t, 4, game.Hands["A"].Remaining())
		assert.Equal(t, "A", game.Board[4].Owner)
		assert.Equal(t, 8, len(game.Board.OpenCells()))
	})

	t.Run("A failed placement changes nothing", func(t *testing.T) {
		game := newTestGame()
		before := *game

		_, err := game.PlaceCard(9, 4)

		require.ErrorIs(t, err, apperror.ErrInvalidHandSlot)
		assert.Equal(t, before.Board, game.Board)
		assert.Equal(t, 5, game.Hands["A"].Remaining())
	})
}

func TestGame_Score(t *testing.T) {
	t.Run("Score sum stays constant and the higher score wins", func(t *testing.T) {
		// Given: A plays strong cards, B weak ones
		game := newTestGame()
		game.Hands["A"] = NewHand([]Card{*flatCard(9), *flatCard(9), *flatCard(9), *flatCard(9), *flatCard(9)})
		game.Hands["B"] = NewHand([]Card{*flatCard(1), *flatCard(1), *flatCard(1), *flatCard(1), *flatCard(1)})

		// When: the board is filled in order
		for cell := range BoardCellCount {
			player := game.CurrentPlayer()
			slot := game.Hands[player].AvailableSlots()[0]
			_, err := game.PlaceCard(slot, cell)
			require.NoError(t, err)
			assert.Equal(t, 10, game.Score("A")+game.Score("B"))
			game.SwapTurn()
		}

		// Then: one card is left over and A wins
		assert.True(t, game.Board.IsFull())
		assert.Equal(t, 1, game.Hands["A"].Remaining()+game.Hands["B"].Remaining())
		winner, tie := game.Outcome()
		assert.False(t, tie)
		assert.Equal(t, "A", winner)
	})

	t.Run("Equal scores tie", func(t *testing.T) {
		game := newTestGame()

		winner, tie := game.Outcome()

		assert.True(t, tie)
		assert.Empty(t, winner)
		assert.Equal(t, 5, game.Score("A"))
	})
}
