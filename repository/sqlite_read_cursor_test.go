package repository

import (
	"context"
	"testing"
	"time"
)

func TestReadCursorUpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteReadCursorRepo(db.Conn)
	ctx := context.Background()

	// İmleç yokken: bulunamadı, hata YOK.
	_, found, err := repo.Get(ctx, user.ID, channel.ID)
	if err != nil {
		t.Fatalf("get before upsert: %v", err)
	}
	if found {
		t.Fatal("expected no cursor before upsert")
	}

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Upsert(ctx, user.ID, channel.ID, now); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, found, err := repo.Get(ctx, user.ID, channel.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected cursor after upsert")
	}
	if got.UTC().Sub(now).Abs() > 2*time.Second {
		t.Errorf("cursor roundtrip drift: wrote %v, read %v", now, got)
	}
}

func TestReadCursorLastWriteWins(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteReadCursorRepo(db.Conn)
	ctx := context.Background()

	older := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	if err := repo.Upsert(ctx, user.ID, channel.ID, older); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(ctx, user.ID, channel.ID, newer); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	// Merge yok: SONRAKİ yazma kazanır, daha eski bir değer de olsa.
	if err := repo.Upsert(ctx, user.ID, channel.ID, older); err != nil {
		t.Fatalf("third upsert: %v", err)
	}

	got, _, err := repo.Get(ctx, user.ID, channel.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.UTC().Equal(older) {
		t.Errorf("last write must win: expected %v, got %v", older, got)
	}
}

func TestReadCursorPartialUpdate(t *testing.T) {
	db := openTestDB(t)
	alice := seedUser(t, db)
	bob := seedUser(t, db)
	ch1 := seedChannel(t, db, alice.ID, bob.ID)
	ch2 := seedChannel(t, db, alice.ID, bob.ID)
	repo := NewSQLiteReadCursorRepo(db.Conn)
	ctx := context.Background()

	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	if err := repo.Upsert(ctx, alice.ID, ch1.ID, t1); err != nil {
		t.Fatalf("upsert alice/ch1: %v", err)
	}
	if err := repo.Upsert(ctx, alice.ID, ch2.ID, t1); err != nil {
		t.Fatalf("upsert alice/ch2: %v", err)
	}
	if err := repo.Upsert(ctx, bob.ID, ch1.ID, t1); err != nil {
		t.Fatalf("upsert bob/ch1: %v", err)
	}

	// Sadece alice/ch1 güncellenir — diğer satırlar DOKUNULMAZ.
	if err := repo.Upsert(ctx, alice.ID, ch1.ID, t2); err != nil {
		t.Fatalf("update alice/ch1: %v", err)
	}

	cursors, err := repo.GetAllForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(cursors) != 2 {
		t.Fatalf("expected 2 cursors for alice, got %d", len(cursors))
	}
	if !cursors[ch1.ID].UTC().Equal(t2) {
		t.Errorf("alice/ch1: expected %v, got %v", t2, cursors[ch1.ID])
	}
	if !cursors[ch2.ID].UTC().Equal(t1) {
		t.Errorf("alice/ch2 must be untouched: expected %v, got %v", t1, cursors[ch2.ID])
	}

	bobCursors, err := repo.GetAllForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("get all bob: %v", err)
	}
	if !bobCursors[ch1.ID].UTC().Equal(t1) {
		t.Errorf("bob/ch1 must be untouched: expected %v, got %v", t1, bobCursors[ch1.ID])
	}
}
