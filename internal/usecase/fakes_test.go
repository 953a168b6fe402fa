package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDirectory struct {
	players map[string]*entity.Player
}

func newFakeDirectory(players ...*entity.Player) *fakeDirectory {
	directory := &fakeDirectory{players: make(map[string]*entity.Player)}
	for _, player := range players {
		directory.players[player.ID] = player
	}

	return directory
}

func (that *fakeDirectory) Resolve(_ context.Context, name string) (*entity.Player, error) {
	for _, player := range that.players {
		if strings.EqualFold(player.Name, name) {
			return player, nil
		}
	}

	return nil, apperror.ErrPlayerNotFound
}

func (that *fakeDirectory) GetByID(_ context.Context, id string) (*entity.Player, error) {
	if player, ok := that.players[id]; ok {
		return player, nil
	}

	return nil, apperror.ErrPlayerNotFound
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices map[string][]tripletriad.Notice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notices: make(map[string][]tripletriad.Notice)}
}

func (that *recordingNotifier) Notify(playerID string, notice tripletriad.Notice) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.notices[playerID] = append(that.notices[playerID], notice)
}

func (that *recordingNotifier) texts(playerID string) []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	var texts []string
	for _, notice := range that.notices[playerID] {
		if notice.Text != "" {
			texts = append(texts, notice.Text)
		}
	}

	return texts
}

func (that *recordingNotifier) lastView(playerID string) *tripletriad.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	var last *tripletriad.View
	for _, notice := range that.notices[playerID] {
		if notice.View != nil {
			last = notice.View
		}
	}

	return last
}

func (that *recordingNotifier) count(playerID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.notices[playerID])
}

type fakeTimer struct {
	mu      *sync.Mutex
	fn      func()
	stopped bool
}

func (that *fakeTimer) Stop() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	wasActive := !that.stopped
	that.stopped = true

	return wasActive
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (that *fakeScheduler) AfterFunc(_ time.Duration, f func()) tripletriad.Timer {
	that.mu.Lock()
	defer that.mu.Unlock()

	timer := &fakeTimer{mu: &that.mu, fn: f}
	that.timers = append(that.timers, timer)

	return timer
}

// fireLast runs the most recently armed timer if it is still active.
func (that *fakeScheduler) fireLast() {
	that.mu.Lock()
	if len(that.timers) == 0 {
		that.mu.Unlock()
		return
	}

	timer := that.timers[len(that.timers)-1]
	active := !timer.stopped
	that.mu.Unlock()

	if active {
		timer.fn()
	}
}

// flatDealer deals cards that never capture.
type flatDealer struct{}

func (flatDealer) Deal(count int) []entity.Card {
	cards := make([]entity.Card, count)
	for i := range cards {
		cards[i] = entity.Card{Name: "Geezard", Type: "Monster", Up: 5, Right: 5, Down: 5, Left: 5}
	}

	return cards
}

type firstFitAI struct{}

func (firstFitAI) ChooseMove(game *entity.Game, playerID string) (int, int, error) {
	slots := game.Hands[playerID].AvailableSlots()
	cells := game.Board.OpenCells()

	if len(slots) == 0 || len(cells) == 0 {
		return 0, 0, tripletriad.ErrNoAvailableMoves
	}

	return slots[0], cells[0], nil
}

type mockObserver struct {
	mock.Mock
}

func (that *mockObserver) MatchStarted(ctx context.Context, game *entity.Game) {
	that.Called(ctx, game)
}

func (that *mockObserver) MatchFinished(ctx context.Context, result entity.Result) {
	that.Called(ctx, result)
}

func firstMover(int) int {
	return 0
}
