package transfer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarratorCyclesAndStops(t *testing.T) {
	var mu sync.Mutex
	var seen []string

	n := newNarrator([]string{"one", "two", "three"}, time.Millisecond, func(msg string) {
		mu.Lock()
		seen = append(seen, msg)
		mu.Unlock()
	})
	n.start()
	time.Sleep(10 * time.Millisecond)
	n.stop()

	mu.Lock()
	count := len(seen)
	require.NotZero(t, count)
	assert.Equal(t, "one", seen[0], "narration opens with the first message")
	mu.Unlock()

	// stop is synchronous: nothing fires afterwards, pending tick or not.
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, count, len(seen))
	mu.Unlock()
}

func TestNarratorStopIsIdempotent(t *testing.T) {
	n := newNarrator([]string{"only"}, time.Millisecond, func(string) {})
	n.start()
	n.stop()
	n.stop()
}

func TestNarratorWithoutCallbackIsInert(t *testing.T) {
	n := newNarrator([]string{"only"}, time.Millisecond, nil)
	n.start()
	n.stop()
}
