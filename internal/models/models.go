package models

import "time"

// User represents an account within the Clipstream platform.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Video is the durable record produced by the upload pipeline. IsPublished
// is false exactly when moderation held the upload for human review; public
// listings must filter on it.
type Video struct {
	ID                string
	OwnerID           string
	Title             string
	Description       string
	VideoURL          string
	VideoPublicID     string
	ThumbnailURL      string
	ThumbnailPublicID string
	Duration          float64
	IsPublished       bool
	CreatedAt         time.Time
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
