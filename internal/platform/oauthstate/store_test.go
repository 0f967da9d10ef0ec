package oauthstate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsumeIsOneShot(t *testing.T) {
	s := NewStore(time.Minute)
	s.Put("state-1")

	assert.True(t, s.Consume("state-1"))
	assert.False(t, s.Consume("state-1"))
}

func TestConsumeUnknownState(t *testing.T) {
	s := NewStore(time.Minute)
	assert.False(t, s.Consume("never-issued"))
}

func TestExpiredStateIsRejected(t *testing.T) {
	s := NewStore(time.Minute)
	s.Put("stale")
	s.entries["stale"] = time.Now().Add(-time.Second)

	assert.False(t, s.Consume("stale"))
}

func TestPutSweepsExpiredEntries(t *testing.T) {
	s := NewStore(time.Minute)
	s.Put("stale")
	s.entries["stale"] = time.Now().Add(-time.Second)

	s.Put("fresh")
	assert.NotContains(t, s.entries, "stale")
	assert.True(t, s.Consume("fresh"))
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			state := string(rune('a' + n%26))
			s.Put(state)
			s.Consume(state)
		}(i)
	}
	wg.Wait()
}
