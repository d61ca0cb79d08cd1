package domain

import "fmt"

// SetSnapshot is the wire and cache representation of the shared state: the
// whole timer set plus the publisher's epoch-millisecond timestamp. The
// timestamp is used only for the self-echo deadband, never for ordering.
type SetSnapshot struct {
	Timers     TimerSet `json:"timers"`
	LastUpdate int64    `json:"lastUpdate"`
}

// Validate performs shape validation on an inbound snapshot. Payloads that
// fail are dropped by the receiver and the previous state is retained.
func (s SetSnapshot) Validate() error {
	if len(s.Timers) == 0 {
		return fmt.Errorf("%w: empty timer set", ErrMalformedSnapshot)
	}
	if s.LastUpdate <= 0 {
		return fmt.Errorf("%w: missing lastUpdate", ErrMalformedSnapshot)
	}
	seen := make(map[string]struct{}, len(s.Timers))
	for i, t := range s.Timers {
		if t.ID == "" {
			return fmt.Errorf("%w: timer %d has empty id", ErrMalformedSnapshot, i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate timer id %q", ErrMalformedSnapshot, t.ID)
		}
		seen[t.ID] = struct{}{}
		if !t.State.Valid() {
			return fmt.Errorf("%w: timer %q has unknown state %q", ErrMalformedSnapshot, t.ID, t.State)
		}
	}
	return nil
}
