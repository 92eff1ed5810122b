package models

import "time"

// Teacher is a tutor profile created together with its first class offering.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Avatar    string    `db:"avatar" json:"avatar"`
	WhatsApp  string    `db:"whatsapp" json:"whatsapp"`
	Bio       string    `db:"bio" json:"bio"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
