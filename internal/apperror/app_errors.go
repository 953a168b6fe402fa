package apperror

import "errors"

// invitation errors, reported to the inviter only.
var (
	ErrTargetNotFound = errors.New("target could not be located")
	ErrInvalidTarget  = errors.New("target is not able to play a game")
	ErrTargetBusy     = errors.New("target is already playing a game")
	ErrSelfPlay       = errors.New("cannot play by yourself")
	ErrAlreadyInGame  = errors.New("already playing a game")
)

// move errors, reported to the mover only. The game state is left untouched.
var (
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidHandSlot   = errors.New("invalid hand slot")
	ErrSlotAlreadyPlayed = errors.New("hand slot already played")
	ErrInvalidBoardCell  = errors.New("invalid board cell")
	ErrCellOccupied      = errors.New("cell is already occupied")
)

var (
	ErrUsage            = errors.New("invalid command usage")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNoActiveGame     = errors.New("no active game")
	ErrNotParticipant   = errors.New("not a participant of this game")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNameTaken        = errors.New("name is already taken")
	ErrInvalidName      = errors.New("invalid character name")
	ErrAlreadyConnected = errors.New("character is already connected")
)
