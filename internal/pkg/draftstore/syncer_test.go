package draftstore

import (
	"context"
	"errors"
	"testing"

	"github.com/zapiertracker-hub/Whopify-sub000/app/models"
)

type fakeRemote struct {
	saves int
	loads int
	fail  bool
	pages map[string]*models.CheckoutPage
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{pages: make(map[string]*models.CheckoutPage)}
}

func (f *fakeRemote) SaveDraft(ctx context.Context, page *models.CheckoutPage) error {
	f.saves++
	if f.fail {
		return errors.New("connection refused")
	}
	f.pages[page.PublicID] = page
	return nil
}

func (f *fakeRemote) LoadDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error) {
	f.loads++
	if f.fail {
		return nil, errors.New("connection refused")
	}
	page, ok := f.pages[publicID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return page, nil
}

type fakeLocal struct {
	puts  int
	pages map[string]*models.CheckoutPage
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{pages: make(map[string]*models.CheckoutPage)}
}

func (f *fakeLocal) PutDraft(ctx context.Context, page *models.CheckoutPage) error {
	f.puts++
	f.pages[page.PublicID] = page
	return nil
}

func (f *fakeLocal) GetDraft(ctx context.Context, publicID string) (*models.CheckoutPage, error) {
	page, ok := f.pages[publicID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return page, nil
}

func TestSyncer_OnlineWritesWarmLocalCache(t *testing.T) {
	remote := newFakeRemote()
	local := newFakeLocal()
	s := NewSyncer(remote, local)

	page := &models.CheckoutPage{PublicID: "abc"}
	if err := s.SaveDraft(context.Background(), page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Offline() {
		t.Fatalf("expected session to stay online")
	}
	if remote.saves != 1 || local.puts != 1 {
		t.Fatalf("expected write-through, got remote=%d local=%d", remote.saves, local.puts)
	}
}

func TestSyncer_FirstFailureFlipsOfflineForTheSession(t *testing.T) {
	remote := newFakeRemote()
	remote.fail = true
	local := newFakeLocal()
	s := NewSyncer(remote, local)

	page := &models.CheckoutPage{PublicID: "abc"}

	// The failed save must not surface as an error; the draft lands in
	// the local cache instead.
	if err := s.SaveDraft(context.Background(), page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Offline() {
		t.Fatalf("expected offline mode after remote failure")
	}

	// Later writes skip the network entirely, even if it recovered.
	remote.fail = false
	if err := s.SaveDraft(context.Background(), page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveDraft(context.Background(), page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.saves != 1 {
		t.Fatalf("expected no remote retries after going offline, got %d saves", remote.saves)
	}
	if local.puts != 3 {
		t.Fatalf("expected every write to land locally, got %d", local.puts)
	}
}

func TestSyncer_LoadFallsBackToLocalOnConnectivityLoss(t *testing.T) {
	remote := newFakeRemote()
	remote.fail = true
	local := newFakeLocal()
	local.pages["abc"] = &models.CheckoutPage{PublicID: "abc", InternalName: "cached"}
	s := NewSyncer(remote, local)

	page, err := s.LoadDraft(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.InternalName != "cached" {
		t.Fatalf("expected cached draft, got %q", page.InternalName)
	}
	if !s.Offline() {
		t.Fatalf("expected offline mode after remote load failure")
	}

	// Offline reads never touch the remote again.
	if _, err := s.LoadDraft(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.loads != 1 {
		t.Fatalf("expected a single remote load, got %d", remote.loads)
	}
}

func TestSyncer_NotFoundIsNotConnectivityLoss(t *testing.T) {
	remote := newFakeRemote()
	local := newFakeLocal()
	s := NewSyncer(remote, local)

	_, err := s.LoadDraft(context.Background(), "missing")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
	if s.Offline() {
		t.Fatalf("a missing draft must not flip the session offline")
	}
}
