package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/models"
)

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
type sqliteReactionRepo struct {
	db database.TxQuerier
}

// NewSQLiteReactionRepo, constructor — interface döner.
func NewSQLiteReactionRepo(db database.TxQuerier) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

// Toggle, bir reaction'ı ekler veya kaldırır.
//
// INSERT OR IGNORE ile eklemeyi dener:
// rowsAffected == 1 → eklendi. rowsAffected == 0 → UNIQUE constraint,
// yani zaten var → DELETE. SELECT + INSERT/DELETE çiftine göre avantajı:
// UNIQUE constraint DB seviyesinde korunduğu için race condition yoktur.
func (r *sqliteReactionRepo) Toggle(ctx context.Context, messageID, userID, emoji string) (bool, error) {
	insertQuery := `
		INSERT OR IGNORE INTO reactions (message_id, user_id, emoji)
		VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, insertQuery, messageID, userID, emoji)
	if err != nil {
		return false, fmt.Errorf("toggle reaction insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle reaction rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return true, nil
	}

	deleteQuery := `DELETE FROM reactions WHERE message_id = ? AND user_id = ? AND emoji = ?`
	if _, err := r.db.ExecContext(ctx, deleteQuery, messageID, userID, emoji); err != nil {
		return false, fmt.Errorf("toggle reaction delete: %w", err)
	}

	return false, nil
}

// GetByMessageID, tek bir mesajın reaction'larını gruplanmış olarak döner.
// GROUP_CONCAT(user_id): tepki veren kullanıcı ID'leri virgülle birleşir.
func (r *sqliteReactionRepo) GetByMessageID(ctx context.Context, messageID string) ([]models.ReactionGroup, error) {
	query := `
		SELECT emoji, COUNT(*) as count, GROUP_CONCAT(user_id) as users
		FROM reactions
		WHERE message_id = ?
		GROUP BY emoji
		ORDER BY MIN(created_at) ASC`

	rows, err := r.db.QueryContext(ctx, query, messageID)
	if err != nil {
		return nil, fmt.Errorf("get reactions by message: %w", err)
	}
	defer rows.Close()

	return scanReactionGroups(rows)
}

// GetByMessageIDs, birden fazla mesajın reaction'larını batch yükler (N+1 önleme).
// Reaction'ı olmayan mesajlar map'te key olarak bulunmaz.
func (r *sqliteReactionRepo) GetByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]models.ReactionGroup, error) {
	result := make(map[string][]models.ReactionGroup)
	if len(messageIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(messageIDs))
	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT message_id, emoji, COUNT(*) as count, GROUP_CONCAT(user_id) as users
		FROM reactions
		WHERE message_id IN (%s)
		GROUP BY message_id, emoji
		ORDER BY message_id, MIN(created_at) ASC`,
		strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get reactions by message ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var messageID, emoji, usersStr string
		var count int
		if err := rows.Scan(&messageID, &emoji, &count, &usersStr); err != nil {
			return nil, fmt.Errorf("scan reaction group: %w", err)
		}

		result[messageID] = append(result[messageID], models.ReactionGroup{
			Emoji: emoji,
			Count: count,
			Users: strings.Split(usersStr, ","),
		})
	}

	return result, rows.Err()
}

// scanReactionGroups, reaction GROUP BY sorgusunun sonuçlarını parse eder.
func scanReactionGroups(rows *sql.Rows) ([]models.ReactionGroup, error) {
	var groups []models.ReactionGroup
	for rows.Next() {
		var emoji, usersStr string
		var count int
		if err := rows.Scan(&emoji, &count, &usersStr); err != nil {
			return nil, fmt.Errorf("scan reaction group: %w", err)
		}

		groups = append(groups, models.ReactionGroup{
			Emoji: emoji,
			Count: count,
			Users: strings.Split(usersStr, ","),
		})
	}

	return groups, rows.Err()
}
