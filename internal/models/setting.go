package models

import "time"

// Setting is a single key/value configuration row. Value holds JSON text.
type Setting struct {
	ID          int64
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}
