// Package redis implements the broadcast channel adapter on Redis Pub/Sub.
//
// Delivery is at-least-once and unordered, and includes the publisher
// itself; the self-echo is required by the leadership deadband. Reconnection
// is handled by go-redis; messages missed while disconnected are lost, which
// is acceptable because every broadcast carries the full state.
package redis
