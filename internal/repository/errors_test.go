package repository

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsConstraintViolation(t *testing.T) {
	check := fmt.Errorf("insert class schedule: %w", &pq.Error{Code: "23514", Constraint: "class_schedules_window_check"})
	fk := &pq.Error{Code: "23503", Constraint: "classes_teacher_id_fkey"}
	timeout := &pq.Error{Code: "57014"}

	assert.True(t, IsConstraintViolation(check))
	assert.True(t, IsConstraintViolation(fk))
	assert.False(t, IsConstraintViolation(timeout))
	assert.False(t, IsConstraintViolation(sql.ErrConnDone))
	assert.Equal(t, "class_schedules_window_check", ConstraintName(check))
	assert.Empty(t, ConstraintName(sql.ErrConnDone))
}
