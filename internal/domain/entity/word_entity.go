package entity

import "time"

// Word is a vocabulary entry. Origin is unique across the table.
type Word struct {
	ID            int64
	Origin        string
	Pronunciation string
	Translation   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
