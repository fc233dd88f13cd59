package ledger

import (
	"sync"

	"github.com/kaikalii/transactor/internal/models"
)

// Service wraps a Ledger behind a mutex so transactions arriving from
// multiple goroutines (the HTTP server path) are applied one at a time.
// Dispute correctness depends on history built by strictly prior
// transactions for the same client; a single lock preserves arrival
// order for every client.
type Service struct {
	mu     sync.Mutex
	ledger *Ledger
}

// NewService creates a service around a fresh ledger.
func NewService() *Service {
	return &Service{ledger: New()}
}

// Apply executes one transaction under the lock.
func (s *Service) Apply(tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Apply(tx)
}

// View runs fn with the ledger held under the lock. fn must not retain
// the ledger or any account past its return.
func (s *Service) View(fn func(*Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ledger)
}
