// Package database implements the durable store adapter on PostgreSQL.
//
// The store holds one row per timer and is only ever read in full or
// replaced in full; it is the latest snapshot, not a history.
package database
