package utils

import "strings"

// IsUniqueConstraint reports whether err is a SQLite unique-index
// violation. The sqlite driver exposes no typed error for this, so we
// match the message the way the driver emits it.
func IsUniqueConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
