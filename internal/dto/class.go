package dto

import (
	"time"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

// SearchClassesQuery carries the raw availability search filters.
type SearchClassesQuery struct {
	Subject string `form:"subject"`
	WeekDay string `form:"week_day"`
	Time    string `form:"time"`
}

// ScheduleItem is one weekly availability window in a registration payload.
type ScheduleItem struct {
	WeekDay *models.WeekDay `json:"week_day"`
	From    string          `json:"from"`
	To      string          `json:"to"`
}

// CreateClassRequest registers a teacher, a class offering and its weekly schedule.
type CreateClassRequest struct {
	Name     string         `json:"name" validate:"required,max=255"`
	Avatar   string         `json:"avatar" validate:"required,url,max=2048"`
	WhatsApp string         `json:"whatsapp" validate:"required,max=32"`
	Bio      string         `json:"bio" validate:"required,max=2000"`
	Subject  string         `json:"subject" validate:"required,max=120"`
	Cost     *float64       `json:"cost" validate:"required,gte=0,lte=99999999.99"`
	Schedule []ScheduleItem `json:"schedule"`
}

// ClassSearchResult is a class offering joined with its teacher.
type ClassSearchResult struct {
	ID        string  `json:"id"`
	TeacherID string  `json:"teacher_id"`
	Name      string  `json:"name"`
	Avatar    string  `json:"avatar"`
	WhatsApp  string  `json:"whatsapp"`
	Bio       string  `json:"bio"`
	Subject   string  `json:"subject"`
	Cost      float64 `json:"cost"`
}

// ScheduleEntry renders a stored slot with HH:MM bounds.
type ScheduleEntry struct {
	ID      string         `json:"id"`
	WeekDay models.WeekDay `json:"week_day"`
	From    string         `json:"from"`
	To      string         `json:"to"`
}

// ClassDetail describes a class offering with its teacher and schedule.
type ClassDetail struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Cost      float64         `json:"cost"`
	Teacher   models.Teacher  `json:"teacher"`
	Schedule  []ScheduleEntry `json:"schedule"`
	CreatedAt time.Time       `json:"created_at"`
}
