package entities

import "time"

// Link maps a short code to its destination URL. Code is the logical
// primary key: unique, immutable, never deleted. ID only fixes the
// insertion order for listing tie-breaks.
type Link struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"uniqueIndex;size:16;not null"`
	Destination string    `gorm:"size:2048;not null"`
	Clicks      int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
}
