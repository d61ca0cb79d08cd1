package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

func sampleSnapshot() domain.SetSnapshot {
	return domain.SetSnapshot{
		Timers: domain.TimerSet{
			{ID: "a", Name: "Participante 1", TimeRemaining: 120, TotalTime: 300, State: domain.StateRunning},
		},
		LastUpdate: 1700000000000,
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timers.json")
	c := New(path)

	c.Write(sampleSnapshot())

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestWriteOverwritesPrevious(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "timers.json"))

	c.Write(sampleSnapshot())
	updated := sampleSnapshot()
	updated.Timers[0].TimeRemaining = 60
	updated.LastUpdate = 1700000001000
	c.Write(updated)

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, 60, got.Timers[0].TimeRemaining)
}

func TestRead_MissingFile(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "timers.json"))

	_, ok := c.Read()

	assert.False(t, ok)
}

func TestRead_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, ok := New(path).Read()

	assert.False(t, ok)
}

func TestRead_EmptyTimerSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timers":[],"lastUpdate":1}`), 0o644))

	_, ok := New(path).Read()

	assert.False(t, ok)
}
