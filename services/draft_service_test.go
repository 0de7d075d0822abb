package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
)

// fakeDraftRepo, in-memory DraftRepository. Upsert sayacı debounce
// coalescing'i doğrulamak için tutulur.
type fakeDraftRepo struct {
	mu      sync.Mutex
	drafts  map[string]models.Draft
	upserts int
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]models.Draft)}
}

func (f *fakeDraftRepo) key(userID, channelID, threadID string) string {
	return userID + "|" + channelID + "|" + threadID
}

func (f *fakeDraftRepo) Upsert(ctx context.Context, draft *models.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	f.drafts[f.key(draft.UserID, draft.ChannelID, draft.ThreadID)] = *draft
	return nil
}

func (f *fakeDraftRepo) Get(ctx context.Context, userID, channelID, threadID string) (*models.Draft, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[f.key(userID, channelID, threadID)]
	if !ok {
		return nil, false, nil
	}
	return &d, true, nil
}

func (f *fakeDraftRepo) GetAllForUser(ctx context.Context, userID string) ([]models.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Draft
	for _, d := range f.drafts {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDraftRepo) Delete(ctx context.Context, userID, channelID, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(userID, channelID, threadID)
	if _, ok := f.drafts[k]; !ok {
		return pkg.ErrNotFound
	}
	delete(f.drafts, k)
	return nil
}

func (f *fakeDraftRepo) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

func TestSaveDraftCoalescesWrites(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo)
	defer svc.Close()

	ctx := context.Background()
	for _, content := range []string{"h", "he", "hel", "hello"} {
		if err := svc.SaveDraft(ctx, "u1", "ch1", &models.SaveDraftRequest{Content: content}); err != nil {
			t.Fatalf("save: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	// Debounce süresi (1sn) + pay kadar bekle.
	time.Sleep(1500 * time.Millisecond)

	if got := repo.upsertCount(); got != 1 {
		t.Errorf("expected a single coalesced write, got %d", got)
	}

	draft, err := svc.GetDraft(ctx, "u1", "ch1", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if draft.Content != "hello" {
		t.Errorf("expected final content persisted, got %q", draft.Content)
	}
}

func TestGetDraftReturnsPendingBeforeFlush(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo)
	defer svc.Close()

	ctx := context.Background()
	if err := svc.SaveDraft(ctx, "u1", "ch1", &models.SaveDraftRequest{Content: "not yet flushed"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Henüz DB'ye inmeden okunabilmeli.
	draft, err := svc.GetDraft(ctx, "u1", "ch1", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if draft.Content != "not yet flushed" {
		t.Errorf("expected pending content, got %q", draft.Content)
	}
	if repo.upsertCount() != 0 {
		t.Errorf("no write should have happened yet, got %d", repo.upsertCount())
	}
}

func TestDraftComposersAreIndependent(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo)
	defer svc.Close()

	ctx := context.Background()
	// Kanal composer'ı ve thread composer'ı ayrı taslaklardır.
	if err := svc.SaveDraft(ctx, "u1", "ch1", &models.SaveDraftRequest{Content: "channel draft"}); err != nil {
		t.Fatalf("save channel draft: %v", err)
	}
	if err := svc.SaveDraft(ctx, "u1", "ch1", &models.SaveDraftRequest{ThreadID: "th1", Content: "thread draft"}); err != nil {
		t.Fatalf("save thread draft: %v", err)
	}

	chDraft, err := svc.GetDraft(ctx, "u1", "ch1", "")
	if err != nil {
		t.Fatalf("get channel draft: %v", err)
	}
	thDraft, err := svc.GetDraft(ctx, "u1", "ch1", "th1")
	if err != nil {
		t.Fatalf("get thread draft: %v", err)
	}
	if chDraft.Content != "channel draft" || thDraft.Content != "thread draft" {
		t.Errorf("composer drafts mixed up: %q / %q", chDraft.Content, thDraft.Content)
	}

	time.Sleep(1500 * time.Millisecond)
	if got := repo.upsertCount(); got != 2 {
		t.Errorf("expected two independent writes, got %d", got)
	}
}

func TestClearDraftCancelsPendingWrite(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo)
	defer svc.Close()

	ctx := context.Background()
	if err := svc.SaveDraft(ctx, "u1", "ch1", &models.SaveDraftRequest{Content: "will be sent"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mesaj gönderildi gibi: taslak anında temizlenir.
	if err := svc.ClearDraft(ctx, "u1", "ch1", ""); err != nil {
		t.Fatalf("clear: %v", err)
	}

	// Debounce süresi geçse bile hayalet taslak dirilmemeli.
	time.Sleep(1500 * time.Millisecond)
	if got := repo.upsertCount(); got != 0 {
		t.Errorf("cancelled pending write must not land, got %d writes", got)
	}
	if _, err := svc.GetDraft(ctx, "u1", "ch1", ""); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestFlushWritesPendingImmediately(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := NewDraftService(repo)
	defer svc.Close()

	ctx := context.Background()
	if err := svc.SaveDraft(ctx, "u1", "ch1", &models.SaveDraftRequest{Content: "shutdown draft"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc.Flush()

	if got := repo.upsertCount(); got != 1 {
		t.Fatalf("expected immediate write on flush, got %d", got)
	}
	if _, found, _ := repo.Get(ctx, "u1", "ch1", ""); !found {
		t.Error("expected draft in repo after flush")
	}
}

func TestSaveDraftValidation(t *testing.T) {
	svc := NewDraftService(newFakeDraftRepo())
	defer svc.Close()

	long := strings.Repeat("x", 2001)
	err := svc.SaveDraft(context.Background(), "u1", "ch1", &models.SaveDraftRequest{Content: long})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for oversized draft, got %v", err)
	}
}
