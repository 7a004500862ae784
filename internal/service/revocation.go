package service

import "sync"

// RevocationSet records tokens invalidated before their natural expiry.
// It is owned by the AuthService instance that consults it, safe for
// concurrent Add and Contains, and in-memory only: revocations are lost on
// restart (accepted limitation, tokens still die at their expiry claim).
type RevocationSet struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewRevocationSet() *RevocationSet {
	return &RevocationSet{tokens: make(map[string]struct{})}
}

// Add marks a token as revoked. Idempotent.
func (s *RevocationSet) Add(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
}

// Contains reports whether the token has been revoked.
func (s *RevocationSet) Contains(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// Len returns the number of revoked tokens currently held.
func (s *RevocationSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
