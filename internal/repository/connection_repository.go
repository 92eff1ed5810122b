package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

// ConnectionRepository stores student-to-teacher contact events.
type ConnectionRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewConnectionRepository constructs the repository.
func NewConnectionRepository(db *sqlx.DB) *ConnectionRepository {
	return &ConnectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a connection for an existing teacher.
func (r *ConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if conn == nil || conn.TeacherID == "" {
		return fmt.Errorf("teacher_id is required")
	}
	if conn.ID == "" {
		conn.ID = uuid.NewString()
	}
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.
		Insert("connections").
		Columns("id", "teacher_id", "created_at").
		Values(conn.ID, conn.TeacherID, conn.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build connection insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert connection: %w", err)
	}
	return nil
}

// Count returns the number of recorded connections, optionally for one teacher.
func (r *ConnectionRepository) Count(ctx context.Context, teacherID string) (int64, error) {
	builder := r.sb.Select("COUNT(*)").From("connections")
	if teacherID != "" {
		builder = builder.Where(squirrel.Eq{"teacher_id": teacherID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build connection count: %w", err)
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count connections: %w", err)
	}
	return total, nil
}
