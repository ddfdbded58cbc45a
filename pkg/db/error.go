package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// duplicateKeyMarkers are the driver messages for a key violation when the
// dialector does not translate it into gorm.ErrDuplicatedKey.
var duplicateKeyMarkers = []string{
	// postgres 23505
	"duplicate key value violates unique constraint",
	// mysql
	"Error 1062",
	// sqlite 2067
	"UNIQUE constraint failed",
}

// IsDuplicateKeyErr reports a primary or unique key violation on any
// supported dialect.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	for _, marker := range duplicateKeyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
