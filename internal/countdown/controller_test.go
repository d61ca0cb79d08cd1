package countdown

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

type controllerFixture struct {
	controller *Controller
	engine     *Engine
	channel    *fakeChannel
	store      *fakeStore
}

func newControllerFixture(t *testing.T, seed domain.TimerSet) *controllerFixture {
	t.Helper()

	clock := clockwork.NewFakeClock()
	store := &fakeStore{}
	channel := &fakeChannel{}
	engine := New(store, channel, &fakeCache{}, clock, nil)
	engine.timers = seed
	engine.Start()
	t.Cleanup(engine.Stop)

	return &controllerFixture{
		controller: NewController(engine),
		engine:     engine,
		channel:    channel,
		store:      store,
	}
}

func twoTimers() domain.TimerSet {
	return domain.TimerSet{
		{ID: "a", Name: "Participante 1", TimeRemaining: 300, TotalTime: 300, State: domain.StateStopped},
		{ID: "b", Name: "Participante 2", TimeRemaining: 120, TotalTime: 300, State: domain.StateRunning},
	}
}

func TestAddTimer(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.AddTimer()

	assert.True(t, applied)
	require.Len(t, timers, 3)
	added := timers[2]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Participante 3", added.Name)
	assert.Equal(t, domain.DefaultDuration, added.TimeRemaining)
	assert.Equal(t, domain.DefaultDuration, added.TotalTime)
	assert.Equal(t, domain.StateStopped, added.State)
}

func TestRemoveTimer(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.RemoveTimer("a")

	assert.True(t, applied)
	require.Len(t, timers, 1)
	assert.Equal(t, "b", timers[0].ID)
}

func TestRemoveTimer_LastTimerIsKept(t *testing.T) {
	f := newControllerFixture(t, domain.TimerSet{
		{ID: "only", Name: "Participante 1", TimeRemaining: 300, TotalTime: 300, State: domain.StateStopped},
	})

	timers, applied := f.controller.RemoveTimer("only")

	assert.False(t, applied)
	require.Len(t, timers, 1)
	assert.Equal(t, "only", timers[0].ID)
}

func TestRemoveTimer_UnknownID(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.RemoveTimer("missing")

	assert.False(t, applied)
	assert.Len(t, timers, 2)
}

func TestStartTimer(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.StartTimer("a")

	assert.True(t, applied)
	assert.Equal(t, domain.StateRunning, timers[0].State)
}

func TestStartTimer_NothingRemainingIsRejected(t *testing.T) {
	f := newControllerFixture(t, domain.TimerSet{
		{ID: "a", TimeRemaining: 0, TotalTime: 300, State: domain.StateStopped},
		{ID: "b", TimeRemaining: -4, TotalTime: 300, State: domain.StatePaused},
	})

	_, applied := f.controller.StartTimer("a")
	assert.False(t, applied)

	timers, applied := f.controller.StartTimer("b")
	assert.False(t, applied)
	assert.Equal(t, domain.StatePaused, timers[1].State)
}

func TestPauseTimer_AnyPriorState(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.PauseTimer("b")
	assert.True(t, applied)
	assert.Equal(t, domain.StatePaused, timers[1].State)

	timers, applied = f.controller.PauseTimer("a")
	assert.True(t, applied)
	assert.Equal(t, domain.StatePaused, timers[0].State)
}

func TestResetTimer(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.ResetTimer("b")

	assert.True(t, applied)
	assert.Equal(t, 300, timers[1].TimeRemaining)
	assert.Equal(t, domain.StateStopped, timers[1].State)
}

func TestResetAll(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.ResetAll()

	assert.True(t, applied)
	for _, timer := range timers {
		assert.Equal(t, timer.TotalTime, timer.TimeRemaining)
		assert.Equal(t, domain.StateStopped, timer.State)
	}
}

func TestPauseAll_OnlyAffectsRunning(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.PauseAll()

	assert.True(t, applied)
	assert.Equal(t, domain.StateStopped, timers[0].State)
	assert.Equal(t, domain.StatePaused, timers[1].State)
}

func TestPauseAll_NothingRunningIsNoOp(t *testing.T) {
	f := newControllerFixture(t, domain.TimerSet{
		{ID: "a", TimeRemaining: 300, TotalTime: 300, State: domain.StateStopped},
	})

	_, applied := f.controller.PauseAll()

	assert.False(t, applied)
	assert.Equal(t, 0, f.channel.publishCount())
}

func TestRenameTimer(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.RenameTimer("a", "Equipe Azul")

	assert.True(t, applied)
	assert.Equal(t, "Equipe Azul", timers[0].Name)
}

func TestRetimeTimer_StopsRunningTimer(t *testing.T) {
	f := newControllerFixture(t, domain.TimerSet{
		{ID: "a", Name: "Participante 1", TimeRemaining: 50, TotalTime: 60, State: domain.StateRunning},
	})

	timers, applied := f.controller.RetimeTimer("a", 2, 0)

	assert.True(t, applied)
	assert.Equal(t, 120, timers[0].TimeRemaining)
	assert.Equal(t, 120, timers[0].TotalTime)
	assert.Equal(t, domain.StateStopped, timers[0].State)
}

func TestRetimeTimer_NegativeDurationIsRejected(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	timers, applied := f.controller.RetimeTimer("a", -1, 30)

	assert.False(t, applied)
	assert.Equal(t, 300, timers[0].TotalTime)
}

func TestMutationsBroadcastImmediately(t *testing.T) {
	f := newControllerFixture(t, twoTimers())

	_, applied := f.controller.StartTimer("a")
	require.True(t, applied)

	assert.Equal(t, 1, f.channel.publishCount())
}
