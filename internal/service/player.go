package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/pkg"
)

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{1,19}$`)

// PlayerService is the entity directory: it resolves names and admits characters to the server.
type PlayerService interface {
	Connect(ctx context.Context, name string) (*entity.Player, error)
	Resolve(ctx context.Context, name string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	Seed(ctx context.Context, npcs []entity.Player) error
}

type playerRepo interface {
	Create(ctx context.Context, player *entity.Player) error
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// Connect - returns the character called name, creating it on first use.
// Names held by objects or bots cannot be taken by a session.
func (that *playerService) Connect(ctx context.Context, name string) (*entity.Player, error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidName, name)
	}

	existing, err := that.playerRepo.GetByName(ctx, name)
	if err == nil {
		return admit(existing, name)
	}

	if !errors.Is(err, apperror.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}

	player := &entity.Player{
		ID:   pkg.GeneratePlayerID(),
		Name: name,
		Kind: entity.KindCharacter,
	}

	err = that.playerRepo.Create(ctx, player)
	switch {
	case err == nil:
		return player, nil
	case errors.Is(err, apperror.ErrNameTaken):
		// another session created the name first
		existing, err = that.playerRepo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up player: %w", err)
		}

		return admit(existing, name)
	default:
		return nil, fmt.Errorf("create player %w", err)
	}
}

func admit(player *entity.Player, name string) (*entity.Player, error) {
	if !player.CanPlay() || player.IsBot() {
		return nil, fmt.Errorf("%w: %q is reserved", apperror.ErrInvalidName, name)
	}

	return player, nil
}

func (that *playerService) Resolve(ctx context.Context, name string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}

	return player, nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get player by id %w", err)
	}

	return existingPlayer, nil
}

// Seed - registers configured NPCs. An NPC already in the directory keeps its id.
func (that *playerService) Seed(ctx context.Context, npcs []entity.Player) error {
	for _, npc := range npcs {
		if npc.Kind == "" {
			npc.Kind = entity.KindCharacter
		}

		existing, err := that.playerRepo.GetByName(ctx, npc.Name)
		switch {
		case err == nil:
			npc.ID = existing.ID
		case errors.Is(err, apperror.ErrPlayerNotFound):
			npc.ID = pkg.GeneratePlayerID()
		default:
			return fmt.Errorf("failed to look up npc %q: %w", npc.Name, err)
		}

		if err = that.playerRepo.CreateOrUpdate(ctx, &npc); err != nil {
			return fmt.Errorf("failed to seed npc %q: %w", npc.Name, err)
		}
	}

	return nil
}
