// Package user implements user profile persistence using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	postgres "github.com/heartmarshall/summarizer-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

const (
	table  = "user_profiles"
	entity = "user_profile"
)

// Repo provides user profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Upsert records a sighting of p at the given time. Display attributes and
// last_active are overwritten on every call; created_at is written only when
// the subject is new. Concurrent calls for one subject are last-write-wins.
func (r *Repo) Upsert(ctx context.Context, p domain.Principal, at time.Time) (domain.UserProfile, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("subject_id", "email", "display_name", "picture_url", "created_at", "last_active").
		Values(p.SubjectID, p.Email, p.DisplayName, p.PictureURL, at, at).
		Suffix(`ON CONFLICT (subject_id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			picture_url = EXCLUDED.picture_url,
			last_active = EXCLUDED.last_active
		RETURNING subject_id, email, display_name, picture_url, created_at, last_active`).
		ToSql()
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("build upsert: %w", err)
	}

	var u domain.UserProfile
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&u.SubjectID, &u.Email, &u.DisplayName, &u.PictureURL, &u.CreatedAt, &u.LastActive)
	if err != nil {
		return domain.UserProfile{}, postgres.MapError(err, entity, p.SubjectID)
	}
	return u, nil
}
