package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_GroupsSessionByID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	n := NewLog(zap.New(core))

	n.Show("00:00:00")
	n.SetText("00:00:01")
	n.Dismiss()
	n.Dismiss()

	entries := logs.All()
	require.Len(t, entries, 3, "second dismiss is silent")
	id := entries[0].ContextMap()["notification"]
	assert.NotEmpty(t, id)
	assert.Equal(t, id, entries[1].ContextMap()["notification"])
	assert.Equal(t, id, entries[2].ContextMap()["notification"])
	assert.Equal(t, "00:00:01", entries[1].ContextMap()["text"])
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, b, Nop{}}

	m.Show("00:00:00")
	m.SetText("00:00:01")
	m.Dismiss()

	for _, r := range []*Recorder{a, b} {
		shown, dismissed := r.Counts()
		assert.Equal(t, 1, shown)
		assert.Equal(t, 1, dismissed)
		assert.Equal(t, []string{"00:00:00", "00:00:01"}, r.Texts())
	}
}
