// Package countdown implements the synchronization core: the reconciliation
// engine, the leader/follower tick coordination and the timer lifecycle API.
//
// A single actor goroutine owns the authoritative timer set. Local
// mutations, inbound broadcasts, snapshot reads and the periodic tick are
// all serialized through its command channel, so no two operations ever
// interleave mid-computation. Leadership is not elected: it is inferred from
// the recency of inbound remote broadcasts, with a timestamp deadband to
// tell our own echoed broadcasts apart from genuinely remote ones.
package countdown
