package models

import "time"

// PKCEEntry is a one-time OAuth code verifier. Retrieval is destructive
// and expired rows are treated as absent.
type PKCEEntry struct {
	StateKey  string    `db:"state_key"`
	Verifier  string    `db:"verifier"`
	ExpiresAt time.Time `db:"expires_at"`
}
