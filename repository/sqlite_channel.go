package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
)

// sqliteChannelRepo, ChannelRepository interface'inin SQLite implementasyonu.
type sqliteChannelRepo struct {
	db database.TxQuerier
}

// NewSQLiteChannelRepo, constructor — interface döner.
func NewSQLiteChannelRepo(db database.TxQuerier) ChannelRepository {
	return &sqliteChannelRepo{db: db}
}

// Create, kanalı ve başlangıç üyelerini yazar.
//
// channel.MemberIDs doluysa her üye channel_members'a eklenir.
// INSERT OR IGNORE: aynı üye iki kez listelenmişse sessizce atlanır.
func (r *sqliteChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	query := `
		INSERT INTO channels (name, topic, created_by)
		VALUES (?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		channel.Name,
		channel.Topic,
		channel.CreatedBy,
	).Scan(&channel.ID, &channel.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	for _, userID := range channel.MemberIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO channel_members (channel_id, user_id) VALUES (?, ?)`,
			channel.ID, userID,
		); err != nil {
			return fmt.Errorf("failed to add channel member: %w", err)
		}
	}

	return nil
}

func (r *sqliteChannelRepo) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	query := `
		SELECT id, name, topic, created_by, created_at
		FROM channels WHERE id = ?`

	channel := &models.Channel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&channel.ID, &channel.Name, &channel.Topic,
		&channel.CreatedBy, &channel.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel by id: %w", err)
	}

	memberIDs, err := r.GetMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	channel.MemberIDs = memberIDs

	return channel, nil
}

// GetAllForUser, kullanıcının üyesi olduğu kanalları döner (isme göre sıralı).
// Üye listeleri doldurulmaz — liste görünümünde gerekmez, tek sorgu yeter.
func (r *sqliteChannelRepo) GetAllForUser(ctx context.Context, userID string) ([]models.Channel, error) {
	query := `
		SELECT c.id, c.name, c.topic, c.created_by, c.created_at
		FROM channels c
		JOIN channel_members cm ON cm.channel_id = c.id
		WHERE cm.user_id = ?
		ORDER BY c.name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels for user: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.Name, &c.Topic, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, c)
	}

	return channels, rows.Err()
}

func (r *sqliteChannelRepo) Update(ctx context.Context, channel *models.Channel) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE channels SET name = ?, topic = ? WHERE id = ?`,
		channel.Name, channel.Topic, channel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteChannelRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
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

func (r *sqliteChannelRepo) AddMember(ctx context.Context, channelID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO channel_members (channel_id, user_id) VALUES (?, ?)`,
		channelID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add channel member: %w", err)
	}
	return nil
}

func (r *sqliteChannelRepo) RemoveMember(ctx context.Context, channelID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM channel_members WHERE channel_id = ? AND user_id = ?`,
		channelID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove channel member: %w", err)
	}
	return nil
}

func (r *sqliteChannelRepo) GetMemberIDs(ctx context.Context, channelID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM channel_members WHERE channel_id = ? ORDER BY joined_at ASC`,
		channelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get channel members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *sqliteChannelRepo) IsMember(ctx context.Context, channelID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM channel_members WHERE channel_id = ? AND user_id = ?`,
		channelID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check channel membership: %w", err)
	}
	return count > 0, nil
}
