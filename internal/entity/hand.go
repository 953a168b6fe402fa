package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
)

// Hand has stable slots: playing a card empties its slot instead of compacting the hand.
type Hand []*Card

func NewHand(cards []Card) Hand {
	hand := make(Hand, len(cards))
	for i := range cards {
		card := cards[i]
		hand[i] = &card
	}

	return hand
}

// Card - returns the card in a 1-based slot.
func (that Hand) Card(slot int) (*Card, error) {
	if slot < 1 || slot > len(that) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidHandSlot, slot)
	}

	card := that[slot-1]
	if card == nil {
		return nil, fmt.Errorf("%w: %d", apperror.ErrSlotAlreadyPlayed, slot)
	}

	return card, nil
}

// Take - removes the card from a 1-based slot, leaving the slot empty.
func (that Hand) Take(slot int) (*Card, error) {
	card, err := that.Card(slot)
	if err != nil {
		return nil, err
	}

	that[slot-1] = nil

	return card, nil
}

// Remaining - number of cards not played yet.
func (that Hand) Remaining() int {
	count := 0
	for _, card := range that {
		if card != nil {
			count++
		}
	}

	return count
}

// AvailableSlots - returns the 1-based slots still holding a card.
func (that Hand) AvailableSlots() []int {
	slots := make([]int, 0, len(that))
	for i, card := range that {
		if card != nil {
			slots = append(slots, i+1)
		}
	}

	return slots
}
