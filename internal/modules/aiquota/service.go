package aiquota

import "context"

// Service guards model calls behind a per-session monthly credit allowance.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseCredit deducts one credit from the session's monthly allowance.
// If the session row does not exist yet it is initialised and the credit is
// immediately consumed. Returns ErrQuotaExhausted when the allowance for the
// current month is spent.
func (s *Service) UseCredit(ctx context.Context, sessionID string) error {
	err := s.store.UseCredit(ctx, sessionID)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureSession(ctx, sessionID); initErr != nil {
		return initErr
	}
	return s.store.UseCredit(ctx, sessionID)
}
