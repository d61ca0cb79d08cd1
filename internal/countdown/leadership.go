package countdown

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// LeaderTracker decides whether this participant owns the countdown.
//
// There is no election message. A participant acts as leader whenever no
// remote broadcast has been observed within the grace window; receiving one
// demotes it to follower for the next two ticks. The deadband distinguishes
// our own self-delivered broadcast (whose timestamp sits within a few tens
// of milliseconds of our last publish) from a concurrent remote update.
type LeaderTracker struct {
	clock       clockwork.Clock
	grace       time.Duration
	deadband    time.Duration
	lastRemote  time.Time
	lastPublish int64
}

func NewLeaderTracker(clock clockwork.Clock) *LeaderTracker {
	return &LeaderTracker{
		clock:    clock,
		grace:    leaderGraceTicks * TickInterval,
		deadband: selfEchoDeadband,
	}
}

// NotePublish records the timestamp carried by a locally published snapshot.
func (l *LeaderTracker) NotePublish(unixMilli int64) {
	l.lastPublish = unixMilli
}

// Observe classifies an inbound broadcast timestamp. A self-echo leaves
// leadership untouched and returns true; anything else marks a live remote
// leader and demotes this participant.
func (l *LeaderTracker) Observe(unixMilli int64) (selfEcho bool) {
	if l.lastPublish != 0 && abs64(unixMilli-l.lastPublish) <= l.deadband.Milliseconds() {
		return true
	}
	l.lastRemote = l.clock.Now()
	return false
}

// IsLeader reports whether this participant currently owns the countdown:
// no remote broadcast observed, or the last one has aged out of the grace
// window. The comparison is inclusive so a single remote broadcast
// suppresses exactly the next two ticks.
func (l *LeaderTracker) IsLeader() bool {
	if l.lastRemote.IsZero() {
		return true
	}
	return l.clock.Since(l.lastRemote) > l.grace
}

// Assert clears the remote marker, forcing leader role immediately. Called
// on every accepted local mutation so the initiator of a start drives the
// countdown it just triggered.
func (l *LeaderTracker) Assert() {
	l.lastRemote = time.Time{}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
