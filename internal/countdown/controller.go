package countdown

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

// Controller exposes the timer lifecycle operations. Every operation
// computes a new set from the current one and routes it through the engine
// as a local-origin apply; rejected operations are silent no-ops that return
// the unchanged set.
type Controller struct {
	engine *Engine
}

func NewController(engine *Engine) *Controller {
	return &Controller{engine: engine}
}

// AddTimer appends a new stopped timer with the default duration.
func (c *Controller) AddTimer() (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		timer := domain.Timer{
			ID:            uuid.NewString(),
			Name:          fmt.Sprintf("Participante %d", len(set)+1),
			TimeRemaining: domain.DefaultDuration,
			TotalTime:     domain.DefaultDuration,
			State:         domain.StateStopped,
		}
		return append(set, timer), true
	})
}

// RemoveTimer deletes a timer. Removing the last remaining timer is
// rejected: a set always retains at least one entry.
func (c *Controller) RemoveTimer(id string) (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		if len(set) <= 1 {
			return set, false
		}
		i := set.IndexOf(id)
		if i < 0 {
			return set, false
		}
		return append(set[:i], set[i+1:]...), true
	})
}

// StartTimer sets a timer running. Only effective with time remaining.
func (c *Controller) StartTimer(id string) (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		i := set.IndexOf(id)
		if i < 0 || set[i].TimeRemaining <= 0 {
			return set, false
		}
		set[i].State = domain.StateRunning
		return set, true
	})
}

// PauseTimer freezes a timer's remaining time, whatever its prior state.
func (c *Controller) PauseTimer(id string) (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		i := set.IndexOf(id)
		if i < 0 {
			return set, false
		}
		set[i].State = domain.StatePaused
		return set, true
	})
}

// ResetTimer restores a timer to its configured duration and stops it.
func (c *Controller) ResetTimer(id string) (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		i := set.IndexOf(id)
		if i < 0 {
			return set, false
		}
		set[i].TimeRemaining = set[i].TotalTime
		set[i].State = domain.StateStopped
		return set, true
	})
}

// ResetAll restores every timer to its configured duration and stops it.
func (c *Controller) ResetAll() (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		for i := range set {
			set[i].TimeRemaining = set[i].TotalTime
			set[i].State = domain.StateStopped
		}
		return set, true
	})
}

// PauseAll pauses the timers currently running; others are untouched. A set
// with nothing running is a no-op.
func (c *Controller) PauseAll() (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		changed := false
		for i := range set {
			if set[i].State == domain.StateRunning {
				set[i].State = domain.StatePaused
				changed = true
			}
		}
		return set, changed
	})
}

// RenameTimer changes a timer's display label. Names need not be unique.
func (c *Controller) RenameTimer(id, name string) (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		i := set.IndexOf(id)
		if i < 0 {
			return set, false
		}
		set[i].Name = name
		return set, true
	})
}

// RetimeTimer sets a new duration, overwriting both the configured total and
// the remaining time, and forces the timer stopped. Retiming a running timer
// stops it, which closes the race against a concurrent tick decrement.
func (c *Controller) RetimeTimer(id string, minutes, seconds int) (domain.TimerSet, bool) {
	return c.engine.Mutate(func(set domain.TimerSet) (domain.TimerSet, bool) {
		if minutes < 0 || seconds < 0 {
			return set, false
		}
		i := set.IndexOf(id)
		if i < 0 {
			return set, false
		}
		duration := minutes*60 + seconds
		set[i].TimeRemaining = duration
		set[i].TotalTime = duration
		set[i].State = domain.StateStopped
		return set, true
	})
}
