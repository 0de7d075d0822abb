package repository

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/models"
)

// openTestDB, geçici dosya üzerinde migration'ları uygulanmış bir DB açar.
// Gerçek şemaya karşı test edilir — fake değil.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

var seedCounter int

// seedUser, FK constraint'leri için gerçek bir kullanıcı satırı oluşturur.
func seedUser(t *testing.T, db *database.DB) *models.User {
	t.Helper()

	seedCounter++
	user := &models.User{
		Username:     fmt.Sprintf("user%d", seedCounter),
		Email:        fmt.Sprintf("user%d@test.local", seedCounter),
		PasswordHash: "x",
		Role:         models.UserRoleMember,
		Status:       models.UserStatusOffline,
	}
	if err := NewSQLiteUserRepo(db.Conn).Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// seedChannel, verilen üyelerle bir kanal oluşturur.
func seedChannel(t *testing.T, db *database.DB, creatorID string, memberIDs ...string) *models.Channel {
	t.Helper()

	channel := &models.Channel{
		Name:      "test-channel",
		CreatedBy: creatorID,
		MemberIDs: append([]string{creatorID}, memberIDs...),
	}
	if err := NewSQLiteChannelRepo(db.Conn).Create(context.Background(), channel); err != nil {
		t.Fatalf("seed channel: %v", err)
	}
	return channel
}

// seedMessage, kanala bir mesaj yazar.
func seedMessage(t *testing.T, db *database.DB, channelID, userID, content string, parentID *string) *models.Message {
	t.Helper()

	msg := &models.Message{
		ChannelID: channelID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   content,
	}
	if err := NewSQLiteMessageRepo(db.Conn).Create(context.Background(), msg); err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return msg
}
