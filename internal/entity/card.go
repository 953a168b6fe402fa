package entity

import "fmt"

// Direction is one of the four edges of a card.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (that Direction) String() string {
	switch that {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", int(that))
	}
}

// Opposite - returns the edge that faces this one on an adjacent card.
func (that Direction) Opposite() Direction {
	return (that + 2) % 4
}

// Card is an immutable value; it is owned by whichever hand slot or board cell holds it.
type Card struct {
	Name    string `json:"name"`
	Element string `json:"element,omitempty"`
	Type    string `json:"type"`
	Up      int    `json:"up"`
	Right   int    `json:"right"`
	Down    int    `json:"down"`
	Left    int    `json:"left"`
}

// Rank - returns the rank printed on the given edge.
func (that Card) Rank(dir Direction) int {
	switch dir {
	case Up:
		return that.Up
	case Right:
		return that.Right
	case Down:
		return that.Down
	case Left:
		return that.Left
	default:
		return 0
	}
}
