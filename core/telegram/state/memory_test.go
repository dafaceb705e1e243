package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryManagerStateLifecycle(t *testing.T) {
	mgr := NewMemoryManager()

	assert.Equal(t, StateIdle, mgr.GetState(1))
	assert.False(t, mgr.InProgress(1))

	mgr.SetState(1, State("menu"))
	assert.Equal(t, State("menu"), mgr.GetState(1))
	assert.True(t, mgr.InProgress(1))

	// states of different users are independent
	assert.Equal(t, StateIdle, mgr.GetState(2))

	mgr.ClearState(1)
	assert.Equal(t, StateIdle, mgr.GetState(1))
	assert.False(t, mgr.InProgress(1))
}

func TestMemoryManagerTempData(t *testing.T) {
	mgr := NewMemoryManager()

	_, ok := mgr.GetTempString(7, "kind")
	require.False(t, ok)

	mgr.SetTemp(7, "kind", "found")
	mgr.SetTemp(7, "item_id", int64(42))

	s, ok := mgr.GetTempString(7, "kind")
	require.True(t, ok)
	assert.Equal(t, "found", s)

	n, ok := mgr.GetTempInt64(7, "item_id")
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	// wrong type assertion fails cleanly
	_, ok = mgr.GetTempInt64(7, "kind")
	assert.False(t, ok)

	mgr.ClearTemp(7, "kind")
	_, ok = mgr.GetTempString(7, "kind")
	assert.False(t, ok)

	mgr.Clear(7)
	_, ok = mgr.GetTempInt64(7, "item_id")
	assert.False(t, ok)
}

func TestMemoryManagerConcurrentUsers(t *testing.T) {
	mgr := NewMemoryManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			mgr.SetState(id, State("awaiting_description"))
			mgr.SetTemp(id, "kind", "lost")
		}(int64(i))
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.Equal(t, State("awaiting_description"), mgr.GetState(int64(i)))
		s, ok := mgr.GetTempString(int64(i), "kind")
		require.True(t, ok)
		assert.Equal(t, "lost", s)
	}
}
