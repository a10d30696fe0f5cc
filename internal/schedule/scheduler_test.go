package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDeduplicates(t *testing.T) {
	s := New(nil, nil)

	runs := 0
	for i := 0; i < 5; i++ {
		s.Request("canvas", func() error { runs++; return nil })
	}
	require.Equal(t, 1, s.Len())

	s.Flush()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.Len())
}

func TestRequestLatestCallbackWins(t *testing.T) {
	s := New(nil, nil)

	got := ""
	s.Request("panel", func() error { got = "first"; return nil })
	s.Request("panel", func() error { got = "second"; return nil })
	s.Flush()

	assert.Equal(t, "second", got)
}

func TestFlushRunsInRequestOrder(t *testing.T) {
	s := New(nil, nil)

	var order []string
	for _, id := range []string{"c", "a", "b"} {
		id := id
		s.Request(id, func() error { order = append(order, id); return nil })
	}
	s.Flush()

	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestSingleOutstandingFrame(t *testing.T) {
	frames := 0
	var pump func()
	s := New(func(run func()) { frames++; pump = run }, nil)

	s.Request("a", func() error { return nil })
	s.Request("b", func() error { return nil })
	assert.Equal(t, 1, frames, "second request must ride the outstanding frame")

	pump()
	assert.Equal(t, 0, s.Len())

	// After the frame fires the next request asks for a new one.
	s.Request("a", func() error { return nil })
	assert.Equal(t, 2, frames)
}

func TestCallbackFailureIsolated(t *testing.T) {
	var failedID string
	var failedErr error
	s := New(nil, func(id string, err error) { failedID = id; failedErr = err })

	ran := false
	boom := errors.New("corrupt key")
	s.Request("bad", func() error { return boom })
	s.Request("good", func() error { ran = true; return nil })
	s.Flush()

	assert.True(t, ran, "sibling must still run")
	assert.Equal(t, "bad", failedID)
	assert.ErrorIs(t, failedErr, boom)
}

func TestCallbackPanicRecovered(t *testing.T) {
	var failedID string
	s := New(nil, func(id string, err error) { failedID = id })

	ran := false
	s.Request("panics", func() error { panic("nil key") })
	s.Request("after", func() error { ran = true; return nil })

	assert.NotPanics(t, s.Flush)
	assert.True(t, ran)
	assert.Equal(t, "panics", failedID)
}

func TestRequestDuringFlushLandsNextFrame(t *testing.T) {
	s := New(nil, nil)

	second := 0
	s.Request("a", func() error {
		s.Request("a", func() error { second++; return nil })
		return nil
	})
	s.Flush()
	assert.Equal(t, 0, second, "re-request must not run in the same frame")
	require.Equal(t, 1, s.Len())

	s.Flush()
	assert.Equal(t, 1, second)
}

func TestCancel(t *testing.T) {
	s := New(nil, nil)

	ran := false
	s.Request("a", func() error { ran = true; return nil })
	s.Cancel("a")
	s.Cancel("missing")
	s.Flush()

	assert.False(t, ran)
}
