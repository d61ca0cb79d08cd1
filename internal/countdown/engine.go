package countdown

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/1dinos/desafio-cronometro/internal/domain"
	"github.com/1dinos/desafio-cronometro/internal/metrics"
)

const (
	// TickInterval is the fixed cadence of the countdown decision loop.
	TickInterval = 1 * time.Second

	// leaderGraceTicks is how many tick intervals a remote broadcast
	// suppresses local countdown ownership.
	leaderGraceTicks = 2

	// persistEveryTicks is the durable-store write cadence: broadcasts go
	// out every leader tick, store writes only every Nth.
	persistEveryTicks = 5

	// selfEchoDeadband separates our own echoed broadcast from a genuinely
	// concurrent remote one, by publish-timestamp distance.
	selfEchoDeadband = 50 * time.Millisecond

	publishTimeout = 2 * time.Second
	persistTimeout = 5 * time.Second
	commandTimeout = 5 * time.Second
)

// --- Command types ---

type engineCmd interface{ engineCmd() }

type cmdMutate struct {
	transform func(domain.TimerSet) (domain.TimerSet, bool)
	replyCh   chan mutateResult
}

func (cmdMutate) engineCmd() {}

type mutateResult struct {
	timers  domain.TimerSet
	applied bool
}

type cmdRemote struct {
	snapshot domain.SetSnapshot
}

func (cmdRemote) engineCmd() {}

type cmdSnapshot struct {
	replyCh chan domain.SetSnapshot
}

func (cmdSnapshot) engineCmd() {}

type cmdRole struct {
	replyCh chan bool
}

func (cmdRole) engineCmd() {}

type cmdStop struct{}

func (cmdStop) engineCmd() {}

// --- Engine ---

// Engine owns the authoritative timer set for this participant and
// reconciles local mutations, inbound broadcasts and the periodic tick into
// it. Reconciliation is whole-set last-writer-wins: a remote snapshot
// replaces the set unconditionally, with the physically later arrival
// winning any concurrent-write race.
type Engine struct {
	cmdCh      chan engineCmd
	clock      clockwork.Clock
	store      domain.SnapshotStore
	channel    domain.BroadcastChannel
	cache      domain.FallbackCache
	leadership *LeaderTracker
	timers     domain.TimerSet
	onChange   func(domain.SetSnapshot)
	leaderTick int
	done       chan struct{}
}

// New creates an engine. onChange, if non-nil, is invoked with every new
// authoritative snapshot (local or remote origin) so in-runtime views can
// react; it runs on the actor goroutine and must not block.
// Call Bootstrap and then Start.
func New(store domain.SnapshotStore, channel domain.BroadcastChannel, cache domain.FallbackCache, clock clockwork.Clock, onChange func(domain.SetSnapshot)) *Engine {
	return &Engine{
		cmdCh:      make(chan engineCmd, 256),
		clock:      clock,
		store:      store,
		channel:    channel,
		cache:      cache,
		leadership: NewLeaderTracker(clock),
		onChange:   onChange,
		done:       make(chan struct{}),
	}
}

// Bootstrap loads the initial timer set: durable store first, then the
// fallback cache, then a synthesized default (which is persisted). Nothing
// here is fatal; a store failure just degrades the source.
func (e *Engine) Bootstrap(ctx context.Context) {
	stored, err := e.store.ReadAll(ctx)
	if err != nil {
		slog.Warn("Durable store read failed, falling back to local cache", "error", err)
	}
	if len(stored) > 0 {
		e.timers = stored
		e.cache.Write(domain.SetSnapshot{Timers: stored.Clone(), LastUpdate: e.clock.Now().UnixMilli()})
		slog.Info("Bootstrapped from durable store", "timers", len(stored))
		return
	}

	if snapshot, ok := e.cache.Read(); ok {
		e.timers = snapshot.Timers
		slog.Info("Bootstrapped from fallback cache", "timers", len(snapshot.Timers))
		return
	}

	e.timers = domain.DefaultSet()
	e.cache.Write(domain.SetSnapshot{Timers: e.timers.Clone(), LastUpdate: e.clock.Now().UnixMilli()})
	e.persistNow(ctx, e.timers.Clone())
	slog.Info("Bootstrapped default timer set", "timers", len(e.timers))
}

// Start launches the actor goroutine.
func (e *Engine) Start() {
	go e.run()
}

// Stop shuts the actor down and waits for it to drain.
func (e *Engine) Stop() {
	select {
	case e.cmdCh <- cmdStop{}:
	case <-e.done:
		return
	}

	timer := e.clock.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case <-e.done:
	case <-timer.Chan():
		slog.Warn("Engine stop timed out")
	}
}

// Mutate applies a lifecycle transform to the authoritative set. The
// transform receives a copy and reports whether it changed anything;
// rejected transforms leave state, leadership and the wire untouched.
// Returns the resulting set and whether the mutation was applied.
func (e *Engine) Mutate(transform func(domain.TimerSet) (domain.TimerSet, bool)) (domain.TimerSet, bool) {
	replyCh := make(chan mutateResult, 1)

	select {
	case e.cmdCh <- cmdMutate{transform: transform, replyCh: replyCh}:
	case <-e.done:
		return nil, false
	}

	timer := e.clock.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case res := <-replyCh:
		return res.timers, res.applied
	case <-e.done:
		return nil, false
	case <-timer.Chan():
		slog.Warn("Mutation command timed out")
		return nil, false
	}
}

// ApplyRemote hands an inbound broadcast snapshot to the actor. Safe to call
// from the subscription goroutine; drops the payload if the engine is gone.
func (e *Engine) ApplyRemote(snapshot domain.SetSnapshot) {
	select {
	case e.cmdCh <- cmdRemote{snapshot: snapshot}:
	case <-e.done:
	}
}

// Snapshot returns a copy of the current authoritative set.
func (e *Engine) Snapshot() domain.TimerSet {
	replyCh := make(chan domain.SetSnapshot, 1)
	select {
	case e.cmdCh <- cmdSnapshot{replyCh: replyCh}:
	case <-e.done:
		return nil
	}

	timer := e.clock.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case snapshot := <-replyCh:
		return snapshot.Timers
	case <-e.done:
		return nil
	case <-timer.Chan():
		return nil
	}
}

// IsLeader reports whether this participant currently owns the countdown.
func (e *Engine) IsLeader() bool {
	replyCh := make(chan bool, 1)
	select {
	case e.cmdCh <- cmdRole{replyCh: replyCh}:
	case <-e.done:
		return false
	}

	timer := e.clock.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case leader := <-replyCh:
		return leader
	case <-e.done:
		return false
	case <-timer.Chan():
		return false
	}
}

func (e *Engine) run() {
	defer close(e.done)

	ticker := e.clock.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			e.handleTick()
		case cmd := <-e.cmdCh:
			switch c := cmd.(type) {
			case cmdMutate:
				e.handleMutate(c)
			case cmdRemote:
				e.handleRemote(c.snapshot)
			case cmdSnapshot:
				c.replyCh <- domain.SetSnapshot{Timers: e.timers.Clone()}
			case cmdRole:
				c.replyCh <- e.leadership.IsLeader()
			case cmdStop:
				return
			}
		}
	}
}

// handleTick runs the per-interval countdown decision. Followers skip.
// Leaders with nothing running stay idle: no decrement, no broadcast, so a
// quiet set produces no wire traffic at all.
func (e *Engine) handleTick() {
	if !e.leadership.IsLeader() {
		metrics.TicksTotal.WithLabelValues("follower").Inc()
		metrics.LeaderState.Set(0)
		return
	}
	metrics.LeaderState.Set(1)

	if !e.timers.AnyRunning() {
		metrics.TicksTotal.WithLabelValues("idle").Inc()
		return
	}

	metrics.TicksTotal.WithLabelValues("leader").Inc()
	e.timers = e.timers.Countdown()
	e.leaderTick++
	e.propagate(e.leaderTick%persistEveryTicks == 0)
}

func (e *Engine) handleMutate(c cmdMutate) {
	next, ok := c.transform(e.timers.Clone())
	if !ok {
		c.replyCh <- mutateResult{timers: e.timers.Clone(), applied: false}
		return
	}

	e.timers = next
	e.leadership.Assert()
	metrics.LeaderState.Set(1)
	// Mutations broadcast and persist immediately, outside the tick cadence.
	e.propagate(true)
	c.replyCh <- mutateResult{timers: e.timers.Clone(), applied: true}
}

// handleRemote adopts an inbound snapshot wholesale. Remote-origin updates
// are mirrored to the fallback cache but never re-persisted to the durable
// store; the original sender owns that write.
func (e *Engine) handleRemote(snapshot domain.SetSnapshot) {
	if err := snapshot.Validate(); err != nil {
		metrics.BroadcastsReceived.WithLabelValues("malformed").Inc()
		slog.Debug("Dropping malformed snapshot", "error", err)
		return
	}

	if e.leadership.Observe(snapshot.LastUpdate) {
		metrics.BroadcastsReceived.WithLabelValues("self_echo").Inc()
		return
	}

	metrics.BroadcastsReceived.WithLabelValues("applied").Inc()
	metrics.LeaderState.Set(0)
	e.timers = snapshot.Timers.Clone()
	e.cache.Write(snapshot)
	e.notify(snapshot)
}

// propagate pushes the current set out: broadcast every time, cache mirror
// every time, durable store only when persist is set.
func (e *Engine) propagate(persist bool) {
	snapshot := domain.SetSnapshot{Timers: e.timers.Clone(), LastUpdate: e.clock.Now().UnixMilli()}
	e.leadership.NotePublish(snapshot.LastUpdate)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	if err := e.channel.Publish(ctx, snapshot); err != nil {
		slog.Warn("Failed to publish snapshot", "error", err)
	}
	cancel()

	e.cache.Write(snapshot)

	if persist {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			e.persistNow(ctx, snapshot.Timers)
		}()
	}

	e.notify(snapshot)
}

// persistNow writes the set to the durable store. Failures are logged, not
// retried: the next cadence write re-sends the full current set anyway.
func (e *Engine) persistNow(ctx context.Context, timers domain.TimerSet) {
	if err := e.store.ReplaceAll(ctx, timers); err != nil {
		metrics.StoreWrites.WithLabelValues("error").Inc()
		slog.Warn("Failed to persist timer set", "error", err)
		return
	}
	metrics.StoreWrites.WithLabelValues("ok").Inc()
}

func (e *Engine) notify(snapshot domain.SetSnapshot) {
	if e.onChange != nil {
		e.onChange(snapshot)
	}
}
