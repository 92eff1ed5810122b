package models

import "time"

// Class is a subject offered by a teacher at a given hourly cost.
type Class struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Subject   string    `db:"subject" json:"subject"`
	Cost      float64   `db:"cost" json:"cost"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassAvailability is a class joined with its teacher, as returned by availability search.
type ClassAvailability struct {
	ClassID   string    `db:"class_id"`
	TeacherID string    `db:"teacher_id"`
	Name      string    `db:"name"`
	Avatar    string    `db:"avatar"`
	WhatsApp  string    `db:"whatsapp"`
	Bio       string    `db:"bio"`
	Subject   string    `db:"subject"`
	Cost      float64   `db:"cost"`
	CreatedAt time.Time `db:"created_at"`
}

// ClassSearchFilter selects classes of Subject with a slot covering Minute on WeekDay.
type ClassSearchFilter struct {
	Subject string
	WeekDay WeekDay
	Minute  int
}
