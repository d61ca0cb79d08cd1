package countdown

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestLeaderTracker_LeaderByDefault(t *testing.T) {
	tracker := NewLeaderTracker(clockwork.NewFakeClock())

	assert.True(t, tracker.IsLeader())
}

func TestLeaderTracker_SelfEchoWithinDeadbandDoesNotDemote(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewLeaderTracker(clock)

	published := clock.Now().UnixMilli()
	tracker.NotePublish(published)

	selfEcho := tracker.Observe(published + 30)

	assert.True(t, selfEcho)
	assert.True(t, tracker.IsLeader())
}

func TestLeaderTracker_RemoteBeyondDeadbandDemotesForTwoTicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewLeaderTracker(clock)

	published := clock.Now().UnixMilli()
	tracker.NotePublish(published)

	selfEcho := tracker.Observe(published + 200)
	assert.False(t, selfEcho)
	assert.False(t, tracker.IsLeader())

	// Follower for the next two tick intervals
	clock.Advance(TickInterval)
	assert.False(t, tracker.IsLeader())
	clock.Advance(TickInterval)
	assert.False(t, tracker.IsLeader())

	// Grace window aged out: leader again
	clock.Advance(TickInterval)
	assert.True(t, tracker.IsLeader())
}

func TestLeaderTracker_ObserveWithoutPriorPublishIsNeverSelfEcho(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewLeaderTracker(clock)

	selfEcho := tracker.Observe(clock.Now().UnixMilli())

	assert.False(t, selfEcho)
	assert.False(t, tracker.IsLeader())
}

func TestLeaderTracker_AssertRestoresLeadershipImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewLeaderTracker(clock)

	tracker.Observe(clock.Now().UnixMilli())
	assert.False(t, tracker.IsLeader())

	tracker.Assert()
	assert.True(t, tracker.IsLeader())
}

func TestLeaderTracker_FreshRemoteExtendsGraceWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tracker := NewLeaderTracker(clock)

	tracker.Observe(clock.Now().UnixMilli())
	clock.Advance(2 * TickInterval)
	tracker.Observe(clock.Now().UnixMilli())
	clock.Advance(2 * TickInterval)

	assert.False(t, tracker.IsLeader())

	clock.Advance(TickInterval + time.Millisecond)
	assert.True(t, tracker.IsLeader())
}
