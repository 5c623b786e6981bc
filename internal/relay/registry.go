package relay

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/domain"
)

// Registry maps participant identities to their currently active
// connection. At most one live connection per identity: a later join for
// the same identity silently supersedes the prior binding (last join
// wins). The superseded connection is not closed here; it simply becomes
// unreachable for routing.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.UserID]Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.UserID]Conn)}
}

// Register binds identity to conn, overwriting any prior binding.
func (r *Registry) Register(id domain.UserID, conn Conn) {
	r.mu.Lock()
	prev, had := r.conns[id]
	r.conns[id] = conn
	r.mu.Unlock()
	if had && prev != conn {
		log.Info().Str("module", "relay.registry").Str("user_id", string(id)).
			Str("conn", conn.ID()).Str("superseded", prev.ID()).Msg("rebound identity")
	}
}

// Lookup returns the connection currently bound to id. A missing binding
// is the expected outcome for stale or unknown targets, not an error.
func (r *Registry) Lookup(id domain.UserID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// Remove drops the binding for id only if it still points at conn.
// This guards a disconnecting connection against removing a binding that
// was already superseded by a newer join for the same identity.
func (r *Registry) Remove(id domain.UserID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.conns[id]; ok && cur == conn {
		delete(r.conns, id)
	}
}

// Len reports the number of live bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
