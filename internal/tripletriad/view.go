package tripletriad

import "github.com/rocketscienceinc/tripletriad-backend/internal/entity"

const (
	TitleYourTurn     = "YOUR TURN"
	TitleOpponentTurn = "OPPS TURN"
	TitleGameOver     = "GAME OVER"

	OwnerYou      = "you"
	OwnerOpponent = "opponent"
)

// CellView is one board cell from a participant's point of view.
type CellView struct {
	Name  string       `json:"name"`
	Card  *entity.Card `json:"card,omitempty"`
	Owner string       `json:"owner,omitempty"`
}

// View is what one participant sees: both hands, the board, whose turn it is and the running score.
// Empty hand slots are nil.
type View struct {
	GameID        string         `json:"game_id"`
	Title         string         `json:"title"`
	Opponent      string         `json:"opponent"`
	YourHand      []*entity.Card `json:"your_hand"`
	TheirHand     []*entity.Card `json:"their_hand"`
	Board         []CellView     `json:"board"`
	YourScore     int            `json:"your_score"`
	OpponentScore int            `json:"opponent_score"`
}

// BuildView - snapshots the game for playerID. An empty title means the turn indicator.
func BuildView(game *entity.Game, playerID, title string) *View {
	opponentID := game.Opponent(playerID)

	if title == "" {
		title = TitleOpponentTurn
		if game.CurrentPlayer() == playerID {
			title = TitleYourTurn
		}
	}

	view := &View{
		GameID:        game.ID,
		Title:         title,
		YourHand:      copyHand(game.Hands[playerID]),
		TheirHand:     copyHand(game.Hands[opponentID]),
		Board:         make([]CellView, entity.BoardCellCount),
		YourScore:     game.Score(playerID),
		OpponentScore: game.Score(opponentID),
	}

	if opponent := game.Player(opponentID); opponent != nil {
		view.Opponent = opponent.Name
	}

	for index, cell := range game.Board {
		cellView := CellView{Name: entity.CellName(index)}
		if !cell.IsEmpty() {
			card := *cell.Card
			cellView.Card = &card
			cellView.Owner = OwnerOpponent
			if cell.Owner == playerID {
				cellView.Owner = OwnerYou
			}
		}
		view.Board[index] = cellView
	}

	return view
}

func copyHand(hand entity.Hand) []*entity.Card {
	cards := make([]*entity.Card, len(hand))
	for i, card := range hand {
		if card != nil {
			c := *card
			cards[i] = &c
		}
	}

	return cards
}
