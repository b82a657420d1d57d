package entities

import "time"

// ClickEvent is one recorded access to a short code. Append-only; Code is
// a soft reference to Link.Code, checked by the caller before insert.
type ClickEvent struct {
	ID         uint      `gorm:"primaryKey"`
	Code       string    `gorm:"index;size:16;not null"`
	CreatedAt  time.Time `gorm:"index;not null"`
	UserAgent  string    `gorm:"size:512"`
	ClientAddr string    `gorm:"size:64"`
}
