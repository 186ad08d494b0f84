package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker down")

func failing() error { return errBroker }

func ok() error { return nil }

func Test_circuitBreaker_Call(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var changes []Status
	cb := New(Config{Window: 10, FailureRatio: 0.3, OpenTimeout: time.Second, RecoveryCalls: 2},
		WithClock(func() time.Time { return now }),
		OnStateChange(func(_, to Status) { changes = append(changes, to) }),
	)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(failing), errBroker)
	}
	require.Equal(t, Open, cb.State())
	require.ErrorIs(t, cb.Call(ok), ErrOpenCB)

	now = now.Add(2 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, HalfOpen, cb.State())

	require.Error(t, cb.Call(failing))
	require.Equal(t, Open, cb.State())

	now = now.Add(2 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())

	require.Equal(t, []Status{Open, HalfOpen, Open, HalfOpen, Closed}, changes)
}

func Test_circuitBreaker_WindowSlides(t *testing.T) {
	cb := New(Config{Window: 4, FailureRatio: 0.5, OpenTimeout: time.Minute, RecoveryCalls: 1})

	// failures that slid out of the window no longer count
	require.Error(t, cb.Call(failing))
	for i := 0; i < 4; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Error(t, cb.Call(failing))
	require.Equal(t, Closed, cb.State())

	require.Error(t, cb.Call(failing))
	require.Equal(t, Open, cb.State())

	cb.Reset()
	require.Equal(t, Closed, cb.State())
	require.NoError(t, cb.Call(ok))
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "closed", Closed.String())
	require.Equal(t, "open", Open.String())
	require.Equal(t, "half-open", HalfOpen.String())
	require.Equal(t, "unknown", Status(0).String())
}
