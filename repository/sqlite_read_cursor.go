package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/classhub/database"
)

// sqliteReadCursorRepo, ReadCursorRepository interface'inin SQLite implementasyonu.
type sqliteReadCursorRepo struct {
	db database.TxQuerier
}

// NewSQLiteReadCursorRepo, constructor. Interface döner.
func NewSQLiteReadCursorRepo(db database.TxQuerier) ReadCursorRepository {
	return &sqliteReadCursorRepo{db: db}
}

// Upsert, bir kullanıcının belirli bir kanaldaki okuma imlecini günceller.
//
// ON CONFLICT upsert pattern: PRIMARY KEY (user_id, channel_id) çakışırsa
// satır güncellenir (last-write-wins). Tek satırlık yazma: aynı
// kullanıcının diğer kanal imleçlerine veya başka kullanıcıların
// imleçlerine dokunulmaz.
func (r *sqliteReadCursorRepo) Upsert(ctx context.Context, userID, channelID string, lastReadAt time.Time) error {
	query := `
		INSERT INTO channel_reads (user_id, channel_id, last_read_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, channel_id)
		DO UPDATE SET last_read_at = excluded.last_read_at`

	if _, err := r.db.ExecContext(ctx, query, userID, channelID, lastReadAt.UTC()); err != nil {
		return fmt.Errorf("failed to upsert read cursor: %w", err)
	}
	return nil
}

// Get, tek bir imleci okur. İkinci dönüş: imleç var mı?
// Yokluk ErrNotFound değildir, "hiç okunmamış" normal bir durumdur.
func (r *sqliteReadCursorRepo) Get(ctx context.Context, userID, channelID string) (time.Time, bool, error) {
	var lastReadAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT last_read_at FROM channel_reads WHERE user_id = ? AND channel_id = ?`,
		userID, channelID,
	).Scan(&lastReadAt)

	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get read cursor: %w", err)
	}

	return lastReadAt, true, nil
}

// GetAllForUser, kullanıcının tüm imleçlerini tek sorguyla döner.
// Reconciliation her kanal için ayrı sorgu yapmak yerine bu map'i kullanır.
func (r *sqliteReadCursorRepo) GetAllForUser(ctx context.Context, userID string) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT channel_id, last_read_at FROM channel_reads WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get read cursors for user: %w", err)
	}
	defer rows.Close()

	cursors := make(map[string]time.Time)
	for rows.Next() {
		var channelID string
		var lastReadAt time.Time
		if err := rows.Scan(&channelID, &lastReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan read cursor row: %w", err)
		}
		cursors[channelID] = lastReadAt
	}

	return cursors, rows.Err()
}
