package timer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose_RecomposesAndPads(t *testing.T) {
	for _, d := range []int64{0, 1, 59, 60, 65, 3599, 3600, 3661, 86399, 360000 + 61} {
		s := NewSnapshot(Started, d)
		h, m, sec := Decompose(d)
		assert.Equal(t, d, h*3600+m*60+sec, "d=%d", d)
		assert.Less(t, m, int64(60))
		assert.Less(t, sec, int64(60))
		assert.Len(t, s.Minutes, 2)
		assert.Len(t, s.Seconds, 2)
		assert.GreaterOrEqual(t, len(s.Hours), 2)
		assert.Equal(t, fmt.Sprintf("%02d:%02d:%02d", h, m, sec), s.Clock())
	}

	assert.Equal(t, "00:01:05", NewSnapshot(Started, 65).Clock())
	assert.Equal(t, "100:00:01", NewSnapshot(Started, 360001).Clock())
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Snapshot
		action  Action
		want    Snapshot
		changed bool
	}{
		{"start from idle", NewSnapshot(Idle, 0), ActionStart, NewSnapshot(Started, 0), true},
		{"resume keeps duration", NewSnapshot(Stopped, 42), ActionStart, NewSnapshot(Started, 42), true},
		{"start while started", NewSnapshot(Started, 5), ActionStart, NewSnapshot(Started, 5), false},
		{"stop keeps duration", NewSnapshot(Started, 42), ActionStop, NewSnapshot(Stopped, 42), true},
		{"stop when stopped", NewSnapshot(Stopped, 42), ActionStop, NewSnapshot(Stopped, 42), false},
		{"stop when idle", NewSnapshot(Idle, 0), ActionStop, NewSnapshot(Idle, 0), false},
		{"cancel started", NewSnapshot(Started, 70), ActionCancel, NewSnapshot(Idle, 0), true},
		{"cancel stopped", NewSnapshot(Stopped, 70), ActionCancel, NewSnapshot(Idle, 0), true},
		{"cancel idle", NewSnapshot(Idle, 0), ActionCancel, NewSnapshot(Idle, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.from.transition(tt.action)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestTick_OnlyWhileStarted(t *testing.T) {
	s := NewSnapshot(Started, 59)
	s, ok := s.tick()
	require.True(t, ok)
	assert.Equal(t, "00:01:00", s.Clock())

	_, ok = NewSnapshot(Stopped, 3).tick()
	assert.False(t, ok)
	_, ok = NewSnapshot(Idle, 0).tick()
	assert.False(t, ok)
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"start", "STOP", " cancel "} {
		_, err := ParseAction(name)
		require.NoError(t, err, name)
	}
	_, err := ParseAction("pause")
	require.Error(t, err)
}
