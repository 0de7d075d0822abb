package repository

import (
	"context"
	"testing"
	"time"
)

func TestMessageGetRecentOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedMessage(t, db, channel.ID, user.ID, "m", nil)
	}

	msgs, err := repo.GetRecent(ctx, channel.ID, 3)
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if len(msgs) != 3 {
		t.Errorf("expected limit of 3, got %d", len(msgs))
	}

	all, err := repo.GetRecent(ctx, channel.ID, 100)
	if err != nil {
		t.Fatalf("get recent all: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 messages, got %d", len(all))
	}
}

func TestMessageGetSinceStrictlyAfter(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	seedMessage(t, db, channel.ID, user.ID, "hello", nil)
	seedMessage(t, db, channel.ID, user.ID, "world", nil)

	// Dünkü imleç: her iki mesaj imleçten sonra.
	past := time.Now().UTC().Add(-25 * time.Hour)
	msgs, err := repo.GetSince(ctx, channel.ID, past, 50)
	if err != nil {
		t.Fatalf("get since past: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("expected 2 messages after old cursor, got %d", len(msgs))
	}

	// Yarınki imleç: hiçbir mesaj sonrasında değil.
	future := time.Now().UTC().Add(25 * time.Hour)
	msgs, err = repo.GetSince(ctx, channel.ID, future, 50)
	if err != nil {
		t.Fatalf("get since future: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected no messages after future cursor, got %d", len(msgs))
	}
}

func TestMessageChannelFeedExcludesReplies(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	root := seedMessage(t, db, channel.ID, user.ID, "root", nil)
	seedMessage(t, db, channel.ID, user.ID, "reply", &root.ID)

	msgs, err := repo.GetByChannelID(ctx, channel.ID, "", 50)
	if err != nil {
		t.Fatalf("get by channel: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != root.ID {
		t.Errorf("channel feed must contain only root messages, got %d", len(msgs))
	}
}

func TestMessageGetThreadRecursive(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	root := seedMessage(t, db, channel.ID, user.ID, "root", nil)
	child := seedMessage(t, db, channel.ID, user.ID, "child", &root.ID)
	seedMessage(t, db, channel.ID, user.ID, "grandchild", &child.ID)
	// Başka bir kök: thread'e dahil olmamalı.
	seedMessage(t, db, channel.ID, user.ID, "unrelated", nil)

	msgs, err := repo.GetThread(ctx, root.ID)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected root + 2 descendants, got %d", len(msgs))
	}
	for _, m := range msgs {
		if m.Content == "unrelated" {
			t.Error("unrelated root leaked into thread")
		}
	}
}

func TestMessageGetRecentIncludesReplies(t *testing.T) {
	// Unread backfill yanıtları DA sayar — sadece kök mesajları değil.
	db := openTestDB(t)
	user := seedUser(t, db)
	channel := seedChannel(t, db, user.ID)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	root := seedMessage(t, db, channel.ID, user.ID, "root", nil)
	seedMessage(t, db, channel.ID, user.ID, "reply", &root.ID)

	msgs, err := repo.GetRecent(ctx, channel.ID, 50)
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("expected replies included in backfill, got %d", len(msgs))
	}
}
