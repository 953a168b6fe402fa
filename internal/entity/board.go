package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
)

const (
	BoardSide      = 3
	BoardCellCount = BoardSide * BoardSide
)

// cellNames are ordered row-major: index = row*BoardSide + column.
var cellNames = [BoardCellCount]string{
	"a1", "b1", "c1",
	"a2", "b2", "c2",
	"a3", "b3", "c3",
}

// Cell holds at most one card and the participant currently controlling it.
type Cell struct {
	Card  *Card  `json:"card,omitempty"`
	Owner string `json:"owner,omitempty"`
}

func (that Cell) IsEmpty() bool {
	return that.Card == nil
}

type Board [BoardCellCount]Cell

// neighbor describes one facing pair: the placed card's edge and the neighbor's edge touching it.
type neighbor struct {
	Index int
	Self  Direction
	Other Direction
}

var adjacency = buildAdjacency()

func buildAdjacency() [BoardCellCount][]neighbor {
	var table [BoardCellCount][]neighbor

	for index := range BoardCellCount {
		row, col := index/BoardSide, index%BoardSide

		if row > 0 {
			table[index] = append(table[index], neighbor{Index: index - BoardSide, Self: Up, Other: Down})
		}
		if row < BoardSide-1 {
			table[index] = append(table[index], neighbor{Index: index + BoardSide, Self: Down, Other: Up})
		}
		if col > 0 {
			table[index] = append(table[index], neighbor{Index: index - 1, Self: Left, Other: Right})
		}
		if col < BoardSide-1 {
			table[index] = append(table[index], neighbor{Index: index + 1, Self: Right, Other: Left})
		}
	}

	return table
}

// CellName - returns the player facing name of a cell index, e.g. 4 -> "b2".
func CellName(index int) string {
	if index < 0 || index >= BoardCellCount {
		return ""
	}
	return cellNames[index]
}

// ParseCell - resolves a name such as "B2" to its cell index.
func ParseCell(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for index, cellName := range cellNames {
		if cellName == name {
			return index, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidBoardCell, name)
}

func (that *Board) IsOccupied(index int) bool {
	return !that[index].IsEmpty()
}

func (that *Board) IsFull() bool {
	return len(that.OpenCells()) == 0
}

// OpenCells - returns the indexes of all unoccupied cells.
func (that *Board) OpenCells() []int {
	open := make([]int, 0, BoardCellCount)
	for index, cell := range that {
		if cell.IsEmpty() {
			open = append(open, index)
		}
	}

	return open
}

// ControlledBy - counts the cells currently controlled by owner.
func (that *Board) ControlledBy(owner string) int {
	count := 0
	for _, cell := range that {
		if !cell.IsEmpty() && cell.Owner == owner {
			count++
		}
	}

	return count
}

// Place - puts card into an empty cell for owner and resolves captures against the orthogonal neighbors.
// A neighbor flips only when the placed card's facing rank is strictly greater. Captures do not chain.
// Returns the indexes of the captured cells.
func (that *Board) Place(index int, card *Card, owner string) ([]int, error) {
	if index < 0 || index >= BoardCellCount {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardCell, index)
	}

	if that.IsOccupied(index) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, CellName(index))
	}

	that[index] = Cell{Card: card, Owner: owner}

	var captured []int
	for _, adj := range adjacency[index] {
		target := &that[adj.Index]
		if target.IsEmpty() || target.Owner == owner {
			continue
		}

		if card.Rank(adj.Self) > target.Card.Rank(adj.Other) {
			target.Owner = owner
			captured = append(captured, adj.Index)
		}
	}

	return captured, nil
}
