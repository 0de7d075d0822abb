package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
)

func TestDraftUpsertRoundtrip(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteDraftRepo(db.Conn)
	ctx := context.Background()

	draft := &models.Draft{
		UserID:      user.ID,
		ChannelID:   channel.ID,
		ThreadID:    "",
		Content:     "yarım kalmış mesaj",
		Attachments: []string{"file-a", "file-b"},
	}
	if err := repo.Upsert(ctx, draft); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, found, err := repo.Get(ctx, user.ID, channel.ID, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected draft")
	}
	if got.Content != draft.Content {
		t.Errorf("content: expected %q, got %q", draft.Content, got.Content)
	}
	if len(got.Attachments) != 2 || got.Attachments[0] != "file-a" {
		t.Errorf("attachments roundtrip broken: %v", got.Attachments)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}
}

func TestDraftUpsertOverwrites(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteDraftRepo(db.Conn)
	ctx := context.Background()

	first := &models.Draft{UserID: user.ID, ChannelID: channel.ID, Content: "v1"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert v1: %v", err)
	}
	second := &models.Draft{UserID: user.ID, ChannelID: channel.ID, Content: "v2"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert v2: %v", err)
	}

	got, _, err := repo.Get(ctx, user.ID, channel.ID, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "v2" {
		t.Errorf("expected overwrite to v2, got %q", got.Content)
	}

	// Aynı kanalda thread composer'ı AYRI satırdır.
	threadDraft := &models.Draft{UserID: user.ID, ChannelID: channel.ID, ThreadID: "th1", Content: "thread"}
	if err := repo.Upsert(ctx, threadDraft); err != nil {
		t.Fatalf("upsert thread draft: %v", err)
	}

	all, err := repo.GetAllForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 independent drafts, got %d", len(all))
	}
}

func TestDraftDelete(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteDraftRepo(db.Conn)
	ctx := context.Background()

	draft := &models.Draft{UserID: user.ID, ChannelID: channel.ID, Content: "bye"}
	if err := repo.Upsert(ctx, draft); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.Delete(ctx, user.ID, channel.ID, ""); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := repo.Get(ctx, user.ID, channel.ID, ""); found {
		t.Error("expected draft gone after delete")
	}

	// İkinci silme: satır yok → ErrNotFound.
	err := repo.Delete(ctx, user.ID, channel.ID, "")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
