package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
)

// sqliteClassRepo, ClassRepository interface'inin SQLite implementasyonu.
type sqliteClassRepo struct {
	db database.TxQuerier
}

// NewSQLiteClassRepo, constructor.
func NewSQLiteClassRepo(db database.TxQuerier) ClassRepository {
	return &sqliteClassRepo{db: db}
}

const classColumns = `id, name, teacher_id, channel_id, region, start_date, end_date, total_sessions, weekdays, skipped_holidays, created_at`

// Create, sınıfı kaydeder. ID uygulama tarafında üretilir (uuid);
// weekdays ve skipped_holidays JSON dizisi olarak tutulur.
func (r *sqliteClassRepo) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}

	weekdays, err := json.Marshal(class.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to marshal class weekdays: %w", err)
	}
	skipped, err := json.Marshal(class.SkippedHolidays)
	if err != nil {
		return fmt.Errorf("failed to marshal skipped holidays: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO classes (id, name, teacher_id, channel_id, region, start_date, end_date, total_sessions, weekdays, skipped_holidays)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`,
		class.ID, class.Name, class.TeacherID, class.ChannelID, class.Region,
		class.StartDate, class.EndDate, class.TotalSessions,
		string(weekdays), string(skipped),
	).Scan(&class.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

func (r *sqliteClassRepo) GetByID(ctx context.Context, id string) (*models.Class, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = ?`, id)

	class, err := scanClassRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return class, nil
}

func (r *sqliteClassRepo) GetAll(ctx context.Context) ([]models.Class, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+classColumns+` FROM classes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes: %w", err)
	}
	defer rows.Close()

	return scanClassRows(rows)
}

func (r *sqliteClassRepo) GetByTeacherID(ctx context.Context, teacherID string) ([]models.Class, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+classColumns+` FROM classes WHERE teacher_id = ? ORDER BY created_at DESC`,
		teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes for teacher: %w", err)
	}
	defer rows.Close()

	return scanClassRows(rows)
}

func (r *sqliteClassRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
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

// scanClassRow, tek bir class satırını okur; JSON kolonları çözer.
func scanClassRow(scan func(dest ...any) error) (*models.Class, error) {
	class := &models.Class{}
	var weekdays, skipped string

	err := scan(
		&class.ID, &class.Name, &class.TeacherID, &class.ChannelID, &class.Region,
		&class.StartDate, &class.EndDate, &class.TotalSessions,
		&weekdays, &skipped, &class.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(weekdays), &class.Weekdays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal class weekdays: %w", err)
	}
	if err := json.Unmarshal([]byte(skipped), &class.SkippedHolidays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skipped holidays: %w", err)
	}

	return class, nil
}

func scanClassRows(rows *sql.Rows) ([]models.Class, error) {
	var classes []models.Class
	for rows.Next() {
		class, err := scanClassRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class row: %w", err)
		}
		classes = append(classes, *class)
	}
	return classes, rows.Err()
}
