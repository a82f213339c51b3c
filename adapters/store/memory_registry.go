package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/layer-3/weather/core"
	"github.com/layer-3/weather/ports"
)

// MemoryRegistry is an in-memory implementation of the TokenRegistry interface
type MemoryRegistry struct {
	tokens map[core.Token]struct{}
	mu     sync.RWMutex
}

var _ ports.TokenRegistry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty token registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		tokens: make(map[core.Token]struct{}),
	}
}

// Acquire issues a new random token and marks it valid
func (r *MemoryRegistry) Acquire() core.Token {
	token := core.Token(uuid.New().String())

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = struct{}{}
	return token
}

// IsAuthorized checks if a token is currently valid
func (r *MemoryRegistry) IsAuthorized(token core.Token) bool {
	if token == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[token]
	return ok
}

// Revoke invalidates a token, reporting whether it was valid
func (r *MemoryRegistry) Revoke(token core.Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return false
	}
	delete(r.tokens, token)
	return true
}

// Len returns the number of valid tokens
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tokens)
}
