package domain

// State is the lifecycle state of a single timer.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Valid reports whether s is one of the three known states.
func (s State) Valid() bool {
	return s == StateStopped || s == StateRunning || s == StatePaused
}

// Timer is a single shared countdown.
//
// TimeRemaining is a signed count of seconds and may go negative: a running
// timer keeps counting past zero to show overrun. TotalTime is the configured
// duration and only changes on an explicit retime.
type Timer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TimeRemaining int    `json:"timeRemaining"`
	TotalTime     int    `json:"totalTime"`
	State         State  `json:"state"`
}

// TimerSet is the complete ordered collection of timers shared across
// participants. Every broadcast, persistence write and reconciliation step
// operates on the whole set; there is no per-timer merge.
type TimerSet []Timer

// Clone returns a copy that shares no memory with s.
func (s TimerSet) Clone() TimerSet {
	if s == nil {
		return nil
	}
	out := make(TimerSet, len(s))
	copy(out, s)
	return out
}

// IndexOf returns the position of the timer with the given id, or -1.
func (s TimerSet) IndexOf(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// AnyRunning reports whether at least one timer is counting down.
func (s TimerSet) AnyRunning() bool {
	for i := range s {
		if s[i].State == StateRunning {
			return true
		}
	}
	return false
}

// Countdown returns a copy of s with every running timer advanced by one
// second. No floor is applied: remaining time goes negative on overrun.
func (s TimerSet) Countdown() TimerSet {
	out := s.Clone()
	for i := range out {
		if out[i].State == StateRunning {
			out[i].TimeRemaining--
		}
	}
	return out
}

// DefaultDuration is the bootstrap duration for new and default timers, in seconds.
const DefaultDuration = 300

// DefaultSet returns the synthesized bootstrap state used when both the
// durable store and the fallback cache are empty at startup.
func DefaultSet() TimerSet {
	return TimerSet{
		{ID: "participante-1", Name: "Participante 1", TimeRemaining: DefaultDuration, TotalTime: DefaultDuration, State: StateStopped},
		{ID: "participante-2", Name: "Participante 2", TimeRemaining: DefaultDuration, TotalTime: DefaultDuration, State: StateStopped},
	}
}
