package ws

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// No Run loop is draining the channel; once it fills, further
	// broadcasts must drop instead of blocking the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Broadcast([]byte("payload"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked with a saturated hub")
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	hub.Broadcast([]byte("payload"))

	// The run loop drains the payload even with nobody connected.
	assert.Eventually(t, func() bool {
		return len(hub.broadcast) == 0
	}, time.Second, 10*time.Millisecond)
}
