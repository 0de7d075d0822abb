package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
)

// messageColumns, mesaj + yazar JOIN sorgularının ortak SELECT listesi.
// LEFT JOIN users — kullanıcı silinmiş olsa bile mesaj görünür.
const messageColumns = `
	m.id, m.channel_id, m.user_id, m.parent_id, m.content, m.edited_at, m.created_at,
	u.id, u.username, u.display_name, u.avatar_url, u.role, u.status`

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db database.TxQuerier
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db database.TxQuerier) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (channel_id, user_id, parent_id, content)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		message.ChannelID,
		message.UserID,
		message.ParentID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.id = ?`, messageColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	msg, err := scanMessageRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	return msg, nil
}

// GetByChannelID, cursor-based pagination ile KÖK mesajları getirir.
//
// Thread yanıtları (parent_id dolu) ana akışta listelenmez —
// GetThread ile ayrıca çekilir.
// beforeID boşsa en yeni mesajlardan başlar; doluysa o mesajın
// created_at değerinden öncekileri getirir.
func (r *sqliteMessageRepo) GetByChannelID(ctx context.Context, channelID string, beforeID string, limit int) ([]models.Message, error) {
	var query string
	var args []any

	if beforeID == "" {
		query = fmt.Sprintf(`
			SELECT %s
			FROM messages m
			LEFT JOIN users u ON m.user_id = u.id
			WHERE m.channel_id = ? AND m.parent_id IS NULL
			ORDER BY m.created_at DESC
			LIMIT ?`, messageColumns)
		args = []any{channelID, limit}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM messages m
			LEFT JOIN users u ON m.user_id = u.id
			WHERE m.channel_id = ? AND m.parent_id IS NULL
			  AND m.created_at < (SELECT created_at FROM messages WHERE id = ?)
			ORDER BY m.created_at DESC
			LIMIT ?`, messageColumns)
		args = []any{channelID, beforeID, limit}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages by channel: %w", err)
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

// GetThread, kök mesajı ve tüm alt yanıtlarını recursive CTE ile getirir.
//
// WITH RECURSIVE: kökten başlar, her iterasyonda bir seviye derine iner.
// Sonuç created_at sırasıyla döner — ThreadTree geliş sırasını korur.
func (r *sqliteMessageRepo) GetThread(ctx context.Context, rootID string) ([]models.Message, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE thread(id) AS (
			SELECT id FROM messages WHERE id = ?
			UNION ALL
			SELECT m.id FROM messages m JOIN thread t ON m.parent_id = t.id
		)
		SELECT %s
		FROM messages m
		JOIN thread t ON t.id = m.id
		LEFT JOIN users u ON m.user_id = u.id
		ORDER BY m.created_at ASC`, messageColumns)

	rows, err := r.db.QueryContext(ctx, query, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

// GetRecent, kanalın en yeni limit mesajını döner (yanıtlar dahil).
// Unread reconciliation'ın "cursor yok" backfill sorgusu.
func (r *sqliteMessageRepo) GetRecent(ctx context.Context, channelID string, limit int) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.channel_id = ?
		ORDER BY m.created_at DESC
		LIMIT ?`, messageColumns)

	rows, err := r.db.QueryContext(ctx, query, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent messages: %w", err)
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

// GetSince, after'dan kesinlikle SONRA oluşturulan mesajları döner.
// Unread reconciliation'ın "cursor var" sorgusu — strictly greater,
// imlecin tam üstündeki mesaj sayılmaz.
func (r *sqliteMessageRepo) GetSince(ctx context.Context, channelID string, after time.Time, limit int) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.channel_id = ? AND m.created_at > ?
		ORDER BY m.created_at DESC
		LIMIT ?`, messageColumns)

	rows, err := r.db.QueryContext(ctx, query, channelID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages since: %w", err)
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

func (r *sqliteMessageRepo) Update(ctx context.Context, message *models.Message) error {
	query := `
		UPDATE messages SET content = ?, edited_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING edited_at`

	err := r.db.QueryRowContext(ctx, query, message.Content, message.ID).Scan(&message.EditedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}

	return nil
}

func (r *sqliteMessageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// scanMessageRow, tek bir mesaj + yazar satırını scan eder.
func scanMessageRow(scan func(dest ...any) error) (*models.Message, error) {
	msg := &models.Message{}
	var author models.User
	var authorID sql.NullString
	var username, role, status sql.NullString

	err := scan(
		&msg.ID, &msg.ChannelID, &msg.UserID, &msg.ParentID,
		&msg.Content, &msg.EditedAt, &msg.CreatedAt,
		&authorID, &username, &author.DisplayName, &author.AvatarURL, &role, &status,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		author.ID = authorID.String
		author.Username = username.String
		author.Role = models.UserRole(role.String)
		author.Status = models.UserStatus(status.String)
		msg.Author = &author
	}

	return msg, nil
}

// scanMessageRows, çok satırlı mesaj sorgularının ortak scan döngüsü.
func scanMessageRows(rows *sql.Rows) ([]models.Message, error) {
	var messages []models.Message
	for rows.Next() {
		msg, err := scanMessageRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}
