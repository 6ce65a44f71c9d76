package domain

import "time"

// Pet is a clinic patient. Every pet belongs to exactly one owner account.
type Pet struct {
	ID            int64
	Name          string
	Species       string
	Breed         string
	BirthDate     time.Time
	Image         string
	OwnerID       int64
	OwnerUsername string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
