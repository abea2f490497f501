package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewHandle(t *testing.T) {
	a, b := NewHandle(), NewHandle()
	assert.NotEqual(t, a, b)
	assert.Len(t, a.Short(), 8)
	assert.Equal(t, "abc", Handle("abc").Short())
}

func TestSpawnStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", SpawnState(42).String())
}

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	h := NewHandle()

	s.Insert(h)
	m, ok := s.Get(h)
	require.True(t, ok)
	assert.Equal(t, Pending, m.State)
	assert.False(t, m.HasPID)
	assert.Equal(t, 1, s.Len())

	s.RecordSpawnSuccess(h, 4242)
	m, _ = s.Get(h)
	assert.Equal(t, Running, m.State)
	assert.True(t, m.HasPID)
	assert.Equal(t, 4242, m.PID)

	s.Remove(h)
	_, ok = s.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	// Removing twice is harmless.
	s.Remove(h)
	assert.Equal(t, 0, s.Len())
}

func TestStore_SpawnFailure(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	h := NewHandle()
	s.Insert(h)

	s.RecordSpawnFailure(h)

	m, ok := s.Get(h)
	require.True(t, ok)
	assert.Equal(t, Failed, m.State)
	assert.False(t, m.HasPID)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	h := NewHandle()
	s.Insert(h)

	m, _ := s.Get(h)
	m.State = Failed

	again, _ := s.Get(h)
	assert.Equal(t, Pending, again.State)
}

func TestStore_UnknownHandleIsLoggedNoop(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewStore(zap.New(core))

	s.RecordSpawnSuccess("nope", 1)
	s.RecordSpawnFailure("nope")

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 2, logs.FilterMessage("spawn result for unknown session").Len())
}

func TestStore_AbandonedPendingSession(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewStore(zap.New(core))
	h := NewHandle()

	s.Insert(h)
	s.Remove(h)
	s.RecordSpawnSuccess(h, 99)

	_, ok := s.Get(h)
	assert.False(t, ok, "late success must not resurrect the record")
	assert.Equal(t, 1, logs.FilterMessage("late spawn result for closed session").Len())

	// The abandoned mark is consumed by the first late result.
	s.RecordSpawnFailure(h)
	assert.Equal(t, 1, logs.FilterMessage("spawn result for unknown session").Len())
}

func TestStore_RunningSessionIsNotAbandoned(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewStore(zap.New(core))
	h := NewHandle()

	s.Insert(h)
	s.RecordSpawnSuccess(h, 7)
	s.Remove(h)
	s.RecordSpawnFailure(h)

	assert.Equal(t, 0, logs.FilterMessage("late spawn result for closed session").Len())
	assert.Equal(t, 1, logs.FilterMessage("spawn result for unknown session").Len())
}

func TestStore_LookupCwd(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t))
	s.cwdOf = func(pid int) (string, error) {
		switch pid {
		case 10:
			return "/home/alice/src", nil
		case 11:
			return "", ErrCwdUnsupported
		}
		return "", errors.New("no such process")
	}

	running := NewHandle()
	s.Insert(running)
	s.RecordSpawnSuccess(running, 10)

	unsupported := NewHandle()
	s.Insert(unsupported)
	s.RecordSpawnSuccess(unsupported, 11)

	gone := NewHandle()
	s.Insert(gone)
	s.RecordSpawnSuccess(gone, 12)

	pending := NewHandle()
	s.Insert(pending)

	tests := []struct {
		name   string
		h      Handle
		want   string
		wantOK bool
	}{
		{"running process", running, "/home/alice/src", true},
		{"unsupported platform", unsupported, "", false},
		{"process gone", gone, "", false},
		{"no pid yet", pending, "", false},
		{"unknown handle", "missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := s.LookupCwd(tt.h)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, dir)
		})
	}
}
