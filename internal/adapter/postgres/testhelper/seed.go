package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates a user profile with a unique subject id.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.UserProfile {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.UserProfile{
		SubjectID:   "subject-" + suffix,
		Email:       "user-" + suffix + "@example.com",
		DisplayName: "Test User " + suffix,
		CreatedAt:   now,
		LastActive:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_profiles (subject_id, email, display_name, picture_url, created_at, last_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.SubjectID, p.Email, p.DisplayName, p.PictureURL, p.CreatedAt, p.LastActive,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedRecord inserts an analysis record owned by subject at the given time.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, subject string, createdAt time.Time) domain.AnalysisRecord {
	t.Helper()

	r := domain.AnalysisRecord{
		SubjectID:   subject,
		OwnerEmail:  subject + "@example.com",
		UseCaseID:   "summary",
		UseCaseName: "Summary",
		InputText:   "seeded input " + uniqueSuffix(),
		Result:      "seeded result",
		CreatedAt:   createdAt.UTC().Truncate(time.Microsecond),
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO analysis_records (subject_id, owner_email, usecase_id, usecase_name, input_text, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		r.SubjectID, r.OwnerEmail, r.UseCaseID, r.UseCaseName, r.InputText, r.Result, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedRecord: %v", err)
	}

	return r
}
