package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

// ErrEmptySchedule is returned when a class would be stored without any slot.
var ErrEmptySchedule = errors.New("class schedule must contain at least one slot")

// ErrInvalidSlotWindow is returned when a slot does not satisfy from < to within one day.
var ErrInvalidSlotWindow = errors.New("schedule slot window is invalid")

// ClassRepository persists teachers, class offerings and their weekly schedules.
type ClassRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Search returns classes of the requested subject having at least one slot on
// filter.WeekDay whose half-open window [from_minute, to_minute) contains
// filter.Minute. The EXISTS sub-select yields each class at most once.
func (r *ClassRepository) Search(ctx context.Context, filter models.ClassSearchFilter) ([]models.ClassAvailability, error) {
	query, args, err := r.sb.
		Select(
			"c.id AS class_id",
			"c.teacher_id",
			"t.name",
			"t.avatar",
			"t.whatsapp",
			"t.bio",
			"c.subject",
			"c.cost",
			"c.created_at",
		).
		From("classes c").
		Join("teachers t ON t.id = c.teacher_id").
		Where(squirrel.Eq{"c.subject": filter.Subject}).
		Where(squirrel.Expr(`EXISTS (
	SELECT 1 FROM class_schedules cs
	WHERE cs.class_id = c.id
		AND cs.week_day = ?
		AND cs.from_minute <= ?
		AND cs.to_minute > ?
)`, int(filter.WeekDay), filter.Minute, filter.Minute)).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build class search query: %w", err)
	}

	items := make([]models.ClassAvailability, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("search classes: %w", err)
	}
	return items, nil
}

// FindByID loads a class with its teacher and slots.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, *models.Teacher, []models.ScheduleSlot, error) {
	const classQuery = `SELECT id, teacher_id, subject, cost, created_at FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, classQuery, id); err != nil {
		return nil, nil, nil, err
	}

	const teacherQuery = `SELECT id, name, avatar, whatsapp, bio, created_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, teacherQuery, class.TeacherID); err != nil {
		return nil, nil, nil, fmt.Errorf("load class teacher: %w", err)
	}

	const slotQuery = `SELECT id, class_id, week_day, from_minute, to_minute
FROM class_schedules WHERE class_id = $1 ORDER BY week_day ASC, from_minute ASC`
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, slotQuery, class.ID); err != nil {
		return nil, nil, nil, fmt.Errorf("load class schedule: %w", err)
	}
	return &class, &teacher, slots, nil
}

// CreateWithSchedule inserts the teacher, the class referencing it and every
// slot referencing the class inside a single transaction. On any failure the
// transaction is rolled back and nothing is persisted. Generated ids and
// timestamps are written back into the arguments only after commit.
func (r *ClassRepository) CreateWithSchedule(ctx context.Context, teacher *models.Teacher, class *models.Class, slots []models.ScheduleSlot) (err error) {
	if teacher == nil || class == nil {
		return fmt.Errorf("teacher and class payloads are required")
	}
	if len(slots) == 0 {
		return ErrEmptySchedule
	}
	for i := range slots {
		if !slots[i].Valid() {
			return fmt.Errorf("%w: slot %d", ErrInvalidSlotWindow, i)
		}
	}

	now := time.Now().UTC()
	newTeacher := *teacher
	newTeacher.ID = uuid.NewString()
	newTeacher.CreatedAt = now

	newClass := *class
	newClass.ID = uuid.NewString()
	newClass.TeacherID = newTeacher.ID
	newClass.CreatedAt = now

	newSlots := make([]models.ScheduleSlot, len(slots))
	for i, slot := range slots {
		slot.ID = uuid.NewString()
		slot.ClassID = newClass.ID
		newSlots[i] = slot
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin class registration: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	const teacherQuery = `
INSERT INTO teachers (id, name, avatar, whatsapp, bio, created_at)
VALUES (:id, :name, :avatar, :whatsapp, :bio, :created_at)`
	if _, err = sqlx.NamedExecContext(ctx, tx, teacherQuery, &newTeacher); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}

	const classQuery = `
INSERT INTO classes (id, teacher_id, subject, cost, created_at)
VALUES (:id, :teacher_id, :subject, :cost, :created_at)`
	if _, err = sqlx.NamedExecContext(ctx, tx, classQuery, &newClass); err != nil {
		return fmt.Errorf("insert class: %w", err)
	}

	const slotQuery = `
INSERT INTO class_schedules (id, class_id, week_day, from_minute, to_minute)
VALUES (:id, :class_id, :week_day, :from_minute, :to_minute)`
	for i := range newSlots {
		if _, err = sqlx.NamedExecContext(ctx, tx, slotQuery, &newSlots[i]); err != nil {
			return fmt.Errorf("insert class schedule: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit class registration: %w", err)
	}

	*teacher = newTeacher
	*class = newClass
	copy(slots, newSlots)
	return nil
}
