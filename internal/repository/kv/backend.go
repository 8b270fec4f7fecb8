// Package kv implements the durable key-value store the entity services persist into:
// a namespaced key maps to one JSON-serialized ordered sequence of records.
package kv

import "context"

// Keys under which each entity kind is stored.
const (
	KeyAnimals  = "animals_db"
	KeyHealth   = "health_records"
	KeyFinance  = "finance_records"
	KeyPastures = "pasture_records"
)

// Backend is the raw storage medium behind a Collection. Put replaces the payload
// for key in a single step; no partially written payload may ever be observable.
type Backend interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Put(ctx context.Context, key string, payload []byte) error
}
