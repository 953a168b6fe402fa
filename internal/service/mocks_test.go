package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)
	return args.Error(0)
}

func (that *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)
	return args.Error(0)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (that *mockPlayerRepo) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	args := that.Called(ctx, name)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockAttributeRepo struct {
	mock.Mock
}

func (that *mockAttributeRepo) GetAll(ctx context.Context, entityID string) (map[string]string, error) {
	args := that.Called(ctx, entityID)
	values, _ := args.Get(0).(map[string]string)
	return values, args.Error(1)
}

func (that *mockAttributeRepo) Incr(ctx context.Context, entityID string, deltas map[string]int64) error {
	args := that.Called(ctx, entityID, deltas)
	return args.Error(0)
}

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) SaveResult(ctx context.Context, result *entity.Result) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) GetResult(ctx context.Context, id string) (*entity.Result, error) {
	args := that.Called(ctx, id)
	result, _ := args.Get(0).(*entity.Result)
	return result, args.Error(1)
}

// memoryPlayerRepo keeps players in memory and claims names atomically, like SETNX.
// Lookups sleep for delay so that concurrent callers interleave.
type memoryPlayerRepo struct {
	mu      sync.Mutex
	delay   time.Duration
	players map[string]*entity.Player
	names   map[string]string
}

func newMemoryPlayerRepo(delay time.Duration) *memoryPlayerRepo {
	return &memoryPlayerRepo{
		delay:   delay,
		players: make(map[string]*entity.Player),
		names:   make(map[string]string),
	}
}

func (that *memoryPlayerRepo) Create(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.names[strings.ToLower(player.Name)]; ok {
		return apperror.ErrNameTaken
	}

	that.players[player.ID] = player
	that.names[strings.ToLower(player.Name)] = player.ID

	return nil
}

func (that *memoryPlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = player
	that.names[strings.ToLower(player.Name)] = player.ID

	return nil
}

func (that *memoryPlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return player, nil
}

func (that *memoryPlayerRepo) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	time.Sleep(that.delay)

	that.mu.Lock()
	id, ok := that.names[strings.ToLower(name)]
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return that.GetByID(ctx, id)
}

func (that *memoryPlayerRepo) count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.players)
}
