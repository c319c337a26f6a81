package entity

import (
	"context"
	"time"
)

// Profile mirrors the auth user row. It is upserted lazily the first
// time a user submits a report, so reports never hit a missing FK.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
}
