package transfer

import (
	"sync"
	"time"
)

// DefaultNarrationInterval matches the cadence the web client used for its
// progress messages.
const DefaultNarrationInterval = 2200 * time.Millisecond

// narrator cycles informational messages while an interbank submission is
// in flight. The messages are perceived-latency feedback only; they say
// nothing about the outcome and must never be read as such.
//
// stop is synchronous: once it returns, emit will not be called again, even
// if a tick was already pending. The emit callback runs under the same
// mutex stop takes, so a late tick observes stopped and drops out.
type narrator struct {
	messages []string
	interval time.Duration
	emit     func(string)

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func newNarrator(messages []string, interval time.Duration, emit func(string)) *narrator {
	return &narrator{
		messages: messages,
		interval: interval,
		emit:     emit,
		done:     make(chan struct{}),
	}
}

func (n *narrator) start() {
	if len(n.messages) == 0 || n.emit == nil {
		return
	}
	n.emit(n.messages[0])
	go n.run()
}

func (n *narrator) run() {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	idx := 0
	for {
		select {
		case <-n.done:
			return
		case <-ticker.C:
			n.mu.Lock()
			if n.stopped {
				n.mu.Unlock()
				return
			}
			idx = (idx + 1) % len(n.messages)
			n.emit(n.messages[idx])
			n.mu.Unlock()
		}
	}
}

func (n *narrator) stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}
	n.stopped = true
	close(n.done)
}
