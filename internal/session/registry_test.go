package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/streak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 3

func TestRegistry_OpenGet(t *testing.T) {
	r := NewRegistry(testIterations)
	stats := streak.Stats{CurrentStreak: 2, LongestStreak: 5, LastCompletedDate: "2024-01-05"}

	s := r.Open("conn-1", "Ana", []byte("password1"), stats)
	assert.Equal(t, "ana", s.Username)
	assert.Equal(t, cryptox.DocumentSecret("ana", []byte("password1"), testIterations), s.DocumentSecret)
	assert.Equal(t, stats, s.Stats)

	got, ok := r.Get("conn-1")
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = r.Get("conn-2")
	assert.False(t, ok)
}

func TestRegistry_SameAccountSameSecret(t *testing.T) {
	r := NewRegistry(testIterations)

	a := r.Open("conn-1", "Ana", []byte("password1"), streak.Stats{})
	b := r.Open("conn-2", " ana ", []byte("password1"), streak.Stats{})

	assert.Equal(t, a.DocumentSecret, b.DocumentSecret)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_OpenReplaces(t *testing.T) {
	r := NewRegistry(testIterations)

	r.Open("conn-1", "ana", []byte("password1"), streak.Stats{CurrentStreak: 1})
	r.Open("conn-1", "bob", []byte("password2"), streak.Stats{CurrentStreak: 9})

	got, ok := r.Get("conn-1")
	require.True(t, ok)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, 9, got.Stats.CurrentStreak)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_UpdateStats(t *testing.T) {
	r := NewRegistry(testIterations)
	r.Open("conn-1", "ana", []byte("password1"), streak.Stats{})

	next := streak.Stats{CurrentStreak: 1, LongestStreak: 1, LastCompletedDate: "2024-01-05"}
	require.True(t, r.UpdateStats("conn-1", next))

	got, _ := r.Get("conn-1")
	assert.Equal(t, next, got.Stats)

	assert.False(t, r.UpdateStats("missing", next))
	_, ok := r.Get("missing")
	assert.False(t, ok, "UpdateStats must not create a session")
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := NewRegistry(testIterations)
	r.Open("conn-1", "ana", []byte("password1"), streak.Stats{CurrentStreak: 1})

	got, _ := r.Get("conn-1")
	got.Stats.CurrentStreak = 100

	again, _ := r.Get("conn-1")
	assert.Equal(t, 1, again.Stats.CurrentStreak)
}

func TestRegistry_CloseAndCloseAll(t *testing.T) {
	r := NewRegistry(testIterations)
	r.Open("conn-1", "ana", []byte("password1"), streak.Stats{})
	r.Open("conn-2", "bob", []byte("password2"), streak.Stats{})

	r.Close("conn-1")
	_, ok := r.Get("conn-1")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	r.Close("conn-1")

	r.CloseAll()
	assert.Equal(t, 0, r.Len())
	_, ok = r.Get("conn-2")
	assert.False(t, ok)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(1)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("conn-%d", i)
			r.Open(id, "user", []byte("password1"), streak.Stats{})
			r.UpdateStats(id, streak.Stats{CurrentStreak: i})
			_, _ = r.Get(id)
			if i%2 == 0 {
				r.Close(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, r.Len())
}
