package tripletriad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

type ActionKind int

const (
	ActionMove ActionKind = iota + 1
	ActionForfeit
)

// Action is an in-game command parsed from player input.
type Action struct {
	Kind ActionKind
	Slot int
	Cell int
}

var forfeitWords = map[string]struct{}{
	"forfeit":   {},
	"give up":   {},
	"concede":   {},
	"quit":      {},
	"surrender": {},
}

// ParseAction - parses "forfeit" or "<slot> to <cell>" ("=" is accepted in place of "to").
// Slot range is checked later against the hand; only its format is checked here.
func ParseAction(args string) (Action, error) {
	args = strings.Join(strings.Fields(strings.ToLower(args)), " ")

	if _, ok := forfeitWords[args]; ok {
		return Action{Kind: ActionForfeit}, nil
	}

	lhs, rhs, ok := splitMove(args)
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", apperror.ErrUsage, args)
	}

	slot, err := strconv.Atoi(lhs)
	if err != nil {
		return Action{}, fmt.Errorf("%w: %q", apperror.ErrInvalidHandSlot, lhs)
	}

	cell, err := entity.ParseCell(rhs)
	if err != nil {
		return Action{}, err
	}

	return Action{Kind: ActionMove, Slot: slot, Cell: cell}, nil
}

func splitMove(args string) (string, string, bool) {
	for _, sep := range []string{"=", " to "} {
		if lhs, rhs, found := strings.Cut(args, sep); found {
			lhs, rhs = strings.TrimSpace(lhs), strings.TrimSpace(rhs)
			if lhs == "" || rhs == "" {
				return "", "", false
			}
			return lhs, rhs, true
		}
	}

	return "", "", false
}
