package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/1dinos/desafio-cronometro/internal/domain"
	"github.com/1dinos/desafio-cronometro/internal/metrics"
)

const pingInterval = 5 * time.Second

// Channel broadcasts timer set snapshots to every participant subscribed to
// a named Pub/Sub channel. It implements domain.BroadcastChannel.
type Channel struct {
	rdb            *goredis.Client
	name           string
	clock          clockwork.Clock
	connected      atomic.Bool
	onStatusChange func(connected bool)
}

// NewChannel creates a broadcast channel on the given Pub/Sub channel name.
// onStatusChange, if non-nil, is invoked on every connectivity transition
// observed by MonitorConnection.
func NewChannel(client *Client, name string, clock clockwork.Clock, onStatusChange func(bool)) *Channel {
	c := &Channel{
		rdb:            client.rdb,
		name:           name,
		clock:          clock,
		onStatusChange: onStatusChange,
	}
	c.connected.Store(true)
	metrics.ChannelConnected.Set(1)
	return c
}

// Publish broadcasts a snapshot to all subscribers, including this one.
func (c *Channel) Publish(ctx context.Context, snapshot domain.SetSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.rdb.Publish(ctx, c.name, data).Err(); err != nil {
		metrics.BroadcastsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	metrics.BroadcastsPublished.WithLabelValues("ok").Inc()
	return nil
}

// Subscribe blocks, decoding inbound payloads and invoking handler for each.
// Undecodable payloads are dropped here; semantic validation is the
// receiver's concern. Returns when ctx is cancelled.
func (c *Channel) Subscribe(ctx context.Context, handler func(domain.SetSnapshot)) error {
	pubsub := c.rdb.Subscribe(ctx, c.name)
	defer func() {
		_ = pubsub.Close()
	}()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var snapshot domain.SetSnapshot
			if err := json.Unmarshal([]byte(msg.Payload), &snapshot); err != nil {
				metrics.BroadcastsReceived.WithLabelValues("malformed").Inc()
				slog.Debug("Dropping undecodable broadcast payload", "error", err)
				continue
			}
			handler(snapshot)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Connected reports the last observed connectivity status.
func (c *Channel) Connected() bool {
	return c.connected.Load()
}

// MonitorConnection pings Redis on a fixed interval and tracks connectivity
// transitions. Blocks until ctx is cancelled. Disconnection is non-fatal:
// ticking and cache writes continue while the channel is down.
func (c *Channel) MonitorConnection(ctx context.Context) {
	ticker := c.clock.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := c.rdb.Ping(pingCtx).Err()
			cancel()
			c.setConnected(err == nil)
		case <-ctx.Done():
			return
		}
	}
}

func (c *Channel) setConnected(connected bool) {
	if c.connected.Swap(connected) == connected {
		return
	}

	if connected {
		metrics.ChannelConnected.Set(1)
		slog.Info("Sync channel reconnected", "channel", c.name)
	} else {
		metrics.ChannelConnected.Set(0)
		slog.Warn("Sync channel disconnected", "channel", c.name)
	}
	if c.onStatusChange != nil {
		c.onStatusChange(connected)
	}
}
