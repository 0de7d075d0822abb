package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
)

// sqliteDraftRepo, DraftRepository interface'inin SQLite implementasyonu.
type sqliteDraftRepo struct {
	db database.TxQuerier
}

// NewSQLiteDraftRepo, constructor.
func NewSQLiteDraftRepo(db database.TxQuerier) DraftRepository {
	return &sqliteDraftRepo{db: db}
}

// Upsert, taslağı yazar veya üzerine yazar.
// threadID boş string ise kanal composer'ının taslağıdır; thread_id
// kolonunda NULL yerine '' tutuyoruz çünkü SQLite'ta NULL'lar PRIMARY
// KEY eşitliğinde çakışma saymaz.
func (r *sqliteDraftRepo) Upsert(ctx context.Context, draft *models.Draft) error {
	attachments, err := json.Marshal(draft.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal draft attachments: %w", err)
	}

	query := `
		INSERT INTO drafts (user_id, channel_id, thread_id, content, attachments, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, channel_id, thread_id)
		DO UPDATE SET
			content     = excluded.content,
			attachments = excluded.attachments,
			updated_at  = excluded.updated_at`

	updatedAt := draft.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	if _, err := r.db.ExecContext(ctx, query,
		draft.UserID, draft.ChannelID, draft.ThreadID,
		draft.Content, string(attachments), updatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

// Get, bir composer'ın taslağını okur. İkinci dönüş: taslak var mı?
func (r *sqliteDraftRepo) Get(ctx context.Context, userID, channelID, threadID string) (*models.Draft, bool, error) {
	d := &models.Draft{}
	var attachments string

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, channel_id, thread_id, content, attachments, updated_at
		FROM drafts
		WHERE user_id = ? AND channel_id = ? AND thread_id = ?`,
		userID, channelID, threadID,
	).Scan(&d.UserID, &d.ChannelID, &d.ThreadID, &d.Content, &attachments, &d.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get draft: %w", err)
	}

	if err := json.Unmarshal([]byte(attachments), &d.Attachments); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal draft attachments: %w", err)
	}

	return d, true, nil
}

// GetAllForUser, kullanıcının tüm taslaklarını döner. Uygulama açılışında
// composer'ları doldurmak için kullanılır.
func (r *sqliteDraftRepo) GetAllForUser(ctx context.Context, userID string) ([]models.Draft, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, channel_id, thread_id, content, attachments, updated_at
		FROM drafts
		WHERE user_id = ?
		ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get drafts for user: %w", err)
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		d := &models.Draft{}
		var attachments string
		if err := rows.Scan(&d.UserID, &d.ChannelID, &d.ThreadID, &d.Content, &attachments, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		if err := json.Unmarshal([]byte(attachments), &d.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal draft attachments: %w", err)
		}
		drafts = append(drafts, *d)
	}

	return drafts, rows.Err()
}

// Delete, taslağı siler. Yoksa ErrNotFound.
func (r *sqliteDraftRepo) Delete(ctx context.Context, userID, channelID, threadID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM drafts WHERE user_id = ? AND channel_id = ? AND thread_id = ?`,
		userID, channelID, threadID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
