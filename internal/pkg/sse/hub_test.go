package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyKey(t *testing.T) {
	hub := NewHub[string](0)
	a, closeA := hub.Subscribe("emp-a")
	defer closeA()
	b, closeB := hub.Subscribe("emp-b")
	defer closeB()

	assert.Equal(t, 1, hub.Publish("emp-a", "hello"))
	assert.Equal(t, "hello", <-a)
	assert.Empty(t, b)
	assert.Zero(t, hub.Publish("emp-c", "nobody"))
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub[int](1)
	_, close1 := hub.Subscribe("emp-a")
	ch2, close2 := hub.Subscribe("emp-a")
	require.Equal(t, 2, hub.Streams("emp-a"))

	close1()
	close1()
	assert.Equal(t, 1, hub.Streams("emp-a"))

	close2()
	_, open := <-ch2
	assert.False(t, open)
	assert.Zero(t, hub.Streams("emp-a"))
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub[int](2)
	ch, closeFn := hub.Subscribe("emp-a")
	defer closeFn()

	delivered := 0
	for i := 0; i < 10; i++ {
		delivered += hub.Publish("emp-a", i)
	}
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 0, <-ch)
	assert.Equal(t, 1, <-ch)
}
