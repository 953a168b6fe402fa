package tripletriad

import (
	"math/rand"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

const (
	DefaultMinRank = 1
	DefaultMaxRank = 9

	placeholderName = "Geezard"
	placeholderType = "Monster"
)

// Dealer produces hands for a new game.
type Dealer interface {
	Deal(count int) []entity.Card
}

// RandomDealer draws every rank independently and uniformly from [MinRank, MaxRank].
// It stands in until players own card collections.
type RandomDealer struct {
	MinRank int
	MaxRank int

	intn func(n int) int
}

func NewRandomDealer(minRank, maxRank int) *RandomDealer {
	return &RandomDealer{
		MinRank: minRank,
		MaxRank: maxRank,
		intn:    rand.Intn,
	}
}

func (that *RandomDealer) Deal(count int) []entity.Card {
	cards := make([]entity.Card, count)
	for i := range cards {
		cards[i] = entity.Card{
			Name:  placeholderName,
			Type:  placeholderType,
			Up:    that.rank(),
			Right: that.rank(),
			Down:  that.rank(),
			Left:  that.rank(),
		}
	}

	return cards
}

func (that *RandomDealer) rank() int {
	return that.MinRank + that.intn(that.MaxRank-that.MinRank+1)
}
