// Package server exposes the participant over HTTP: health and metrics
// endpoints, a read surface for the current timer set, the unauthenticated
// mutation routes backing the views, and the WebSocket view feed.
package server
