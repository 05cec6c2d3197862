package util

import (
	"database/sql"
	"time"
)

// StringToNullString treats an empty string as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullStringToString returns "" for NULL.
func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// TimeToNullTime treats a zero time as NULL.
func TimeToNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// BoolToNumber maps a bool onto Oracle's NUMBER(1) convention.
func BoolToNumber(b bool) int {
	if b {
		return 1
	}
	return 0
}
