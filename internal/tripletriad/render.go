package tripletriad

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

const blankFace = "     "

// Render - draws a view as plain text for line based clients.
// Owned cells are marked "<" for you and ">" for the opponent.
func Render(view *View) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  vs %s\n", view.Title, view.Opponent)
	fmt.Fprintf(&sb, "Score: you %d - %d them\n\n", view.YourScore, view.OpponentScore)

	sb.WriteString("       A       B       C\n")
	sb.WriteString("   +-------+-------+-------+\n")
	for row := range entity.BoardSide {
		lines := [3]string{"   |", fmt.Sprintf(" %d |", row+1), "   |"}
		for col := range entity.BoardSide {
			cell := view.Board[row*entity.BoardSide+col]
			face := cardFace(cell.Card)
			lines[0] += ownerMark(cell.Owner) + face[0] + " |"
			lines[1] += " " + face[1] + " |"
			lines[2] += " " + face[2] + " |"
		}
		for _, line := range lines {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("   +-------+-------+-------+\n")
	}

	sb.WriteString("\nYour cards:\n")
	writeHand(&sb, view.YourHand)
	sb.WriteString("Their cards:\n")
	writeHand(&sb, view.TheirHand)

	return sb.String()
}

func ownerMark(owner string) string {
	switch owner {
	case OwnerYou:
		return "<"
	case OwnerOpponent:
		return ">"
	default:
		return " "
	}
}

// cardFace - three lines of five characters: up on top, left/element/right in the middle, down below.
func cardFace(card *entity.Card) [3]string {
	if card == nil {
		return [3]string{blankFace, blankFace, blankFace}
	}

	element := " "
	if card.Element != "" {
		element = strings.ToUpper(card.Element[:1])
	}

	return [3]string{
		fmt.Sprintf("  %s  ", rankLabel(card.Up)),
		fmt.Sprintf("%s %s %s", rankLabel(card.Left), element, rankLabel(card.Right)),
		fmt.Sprintf("  %s  ", rankLabel(card.Down)),
	}
}

// rankLabel - ranks above 9 are shown as "A" like the printed cards.
func rankLabel(rank int) string {
	if rank >= 10 {
		return "A"
	}
	return fmt.Sprint(rank)
}

func writeHand(sb *strings.Builder, hand []*entity.Card) {
	for i, card := range hand {
		if card == nil {
			fmt.Fprintf(sb, "  %d) --\n", i+1)
			continue
		}
		fmt.Fprintf(sb, "  %d) %-10s up %s  right %s  down %s  left %s\n",
			i+1, card.Name, rankLabel(card.Up), rankLabel(card.Right), rankLabel(card.Down), rankLabel(card.Left))
	}
}
