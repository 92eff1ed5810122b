package dto

// CreateConnectionRequest registers that a student contacted a teacher.
type CreateConnectionRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
}

// ConnectionTotal reports how many connections were recorded.
type ConnectionTotal struct {
	Total int64 `json:"total"`
}
