package tripletriad

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingNotifier struct {
	mu      sync.Mutex
	notices map[string][]Notice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notices: make(map[string][]Notice)}
}

func (that *recordingNotifier) Notify(playerID string, notice Notice) {
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

func (that *recordingNotifier) views(playerID string) []*View {
	that.mu.Lock()
	defer that.mu.Unlock()

	var views []*View
	for _, notice := range that.notices[playerID] {
		if notice.View != nil {
			views = append(views, notice.View)
		}
	}

	return views
}

type fakeTimer struct {
	scheduler *fakeScheduler
	fn        func()
	stopped   bool
}

func (that *fakeTimer) Stop() bool {
	that.scheduler.mu.Lock()
	defer that.scheduler.mu.Unlock()

	wasActive := !that.stopped
	that.stopped = true

	return wasActive
}

// fakeScheduler records armed timers; tests fire them by hand.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
	last   time.Duration
}

func (that *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	that.mu.Lock()
	defer that.mu.Unlock()

	timer := &fakeTimer{scheduler: that, fn: f}
	that.timers = append(that.timers, timer)
	that.last = d

	return timer
}

func (that *fakeScheduler) active() []*fakeTimer {
	that.mu.Lock()
	defer that.mu.Unlock()

	var active []*fakeTimer
	for _, timer := range that.timers {
		if !timer.stopped {
			active = append(active, timer)
		}
	}

	return active
}

// fireAll runs every armed timer callback, stopped or not, the way a late time.AfterFunc would.
func (that *fakeScheduler) fireAll() {
	that.mu.Lock()
	timers := append([]*fakeTimer(nil), that.timers...)
	that.mu.Unlock()

	for _, timer := range timers {
		timer.fn()
	}
}

func (that *fakeScheduler) fireLast() {
	that.mu.Lock()
	timer := that.timers[len(that.timers)-1]
	that.mu.Unlock()

	timer.fn()
}

// firstFitAI always plays the first card in hand to the first open cell.
type firstFitAI struct{}

func (firstFitAI) ChooseMove(game *entity.Game, playerID string) (int, int, error) {
	slots := game.Hands[playerID].AvailableSlots()
	cells := game.Board.OpenCells()
	if len(slots) == 0 || len(cells) == 0 {
		return 0, 0, ErrNoAvailableMoves
	}

	return slots[0], cells[0], nil
}

func flatHand(rank int) entity.Hand {
	cards := make([]entity.Card, 5)
	for i := range cards {
		cards[i] = entity.Card{Name: "Geezard", Type: "Monster", Up: rank, Right: rank, Down: rank, Left: rank}
	}

	return entity.NewHand(cards)
}

func newPlayers(secondIsBot bool) [2]*entity.Player {
	return [2]*entity.Player{
		{ID: "alice", Name: "Alice", Kind: entity.KindCharacter},
		{ID: "bob", Name: "Bob", Kind: entity.KindCharacter, Bot: secondIsBot},
	}
}

// fixedAI always answers the same move, legal or not.
type fixedAI struct {
	slot, cell int
}

func (that fixedAI) ChooseMove(*entity.Game, string) (int, int, error) {
	return that.slot, that.cell, nil
}
