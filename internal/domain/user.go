package domain

import "time"

// Principal is the verified identity behind a bearer token.
type Principal struct {
	SubjectID   string
	Email       string
	DisplayName string
	PictureURL  string
}

// UserProfile is the persisted, upserted view of a principal.
type UserProfile struct {
	SubjectID   string
	Email       string
	DisplayName string
	PictureURL  string
	CreatedAt   time.Time
	LastActive  time.Time
}
