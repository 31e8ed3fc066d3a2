package draftstore

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

// ErrDraftNotFound is returned when neither the remote store nor the
// local cache holds the requested draft.
var ErrDraftNotFound = errors.New("checkout draft not found")

// RemoteStore is the network-backed draft store. It must tolerate being
// unreachable; the syncer treats any error as connectivity loss.
type RemoteStore interface {
	SaveDraft(ctx context.Context, page *models.CheckoutPage) error
	LoadDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error)
}

// LocalCache is the durable local fallback that absorbs writes while
// the session is offline.
type LocalCache interface {
	PutDraft(ctx context.Context, page *models.CheckoutPage) error
	GetDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error)
}

// Syncer is the single write policy point for draft persistence: writes
// go through to the remote store, and the first failure flips a
// session-wide offline flag that routes every later write to the local
// cache without retrying the network. There is no reconciliation back;
// recovery requires a fresh session.
type Syncer struct {
	remote RemoteStore
	local  LocalCache

	mu      sync.RWMutex
	offline bool
}

// NewSyncer creates a syncer for one builder session.
func NewSyncer(remote RemoteStore, local LocalCache) *Syncer {
	return &Syncer{remote: remote, local: local}
}

// Offline reports whether the session has fallen back to local writes.
// The UI shows this as a small persistent indicator.
func (s *Syncer) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

// SaveDraft persists a draft. The in-memory draft is already updated by
// the caller; persistence failures never propagate as user-facing
// errors, they only degrade the session to offline mode.
func (s *Syncer) SaveDraft(ctx context.Context, page *models.CheckoutPage) error {
	if s.Offline() {
		return s.local.PutDraft(ctx, page)
	}

	if err := s.remote.SaveDraft(ctx, page); err != nil {
		log.Printf("draft store unreachable, entering offline mode: %v", err)
		s.mu.Lock()
		s.offline = true
		s.mu.Unlock()
		return s.local.PutDraft(ctx, page)
	}

	// Keep the local copy warm so an offline read mid-session still
	// sees the latest draft.
	if err := s.local.PutDraft(ctx, page); err != nil {
		log.Printf("local draft cache write failed: %v", err)
	}
	return nil
}

// LoadDraft reads a draft, preferring the remote store while online and
// falling back to the local cache on connectivity loss.
func (s *Syncer) LoadDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error) {
	if !s.Offline() {
		page, err := s.remote.LoadDraft(ctx, publicID)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrDraftNotFound) {
			return nil, err
		}
		log.Printf("draft store unreachable, entering offline mode: %v", err)
		s.mu.Lock()
		s.offline = true
		s.mu.Unlock()
	}
	return s.local.GetDraft(ctx, publicID)
}
