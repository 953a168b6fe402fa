package hub

import (
	"sync"

	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

const DefaultOutboxSize = 64

// Outbox is a bounded queue between the game and a connection's writer loop.
type Outbox struct {
	notices chan tripletriad.Notice
	done    chan struct{}
	once    sync.Once
}

func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}

	return &Outbox{
		notices: make(chan tripletriad.Notice, size),
		done:    make(chan struct{}),
	}
}

// Deliver - queues the notice, false when the outbox is full or closed.
func (that *Outbox) Deliver(notice tripletriad.Notice) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case that.notices <- notice:
		return true
	default:
		return false
	}
}

func (that *Outbox) Notices() <-chan tripletriad.Notice {
	return that.notices
}

func (that *Outbox) Done() <-chan struct{} {
	return that.done
}

func (that *Outbox) Close() {
	that.once.Do(func() {
		close(that.done)
	})
}
