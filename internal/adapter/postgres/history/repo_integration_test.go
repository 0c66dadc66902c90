package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

func TestIntegration_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	owner := testhelper.SeedProfile(t, pool)
	ctx := context.Background()

	lang := "Español"
	rec := domain.AnalysisRecord{
		SubjectID:      owner.SubjectID,
		OwnerEmail:     owner.Email,
		UseCaseID:      "translate_summary",
		UseCaseName:    "Translated Summary",
		InputText:      "Line one.\nLine two with ünïcödé and \"quotes\" {input_text}",
		Result:         "Resumen: línea uno y dos.",
		TargetLanguage: &lang,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	id, err := repo.Insert(ctx, rec)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	got, err := repo.ListByOwner(ctx, owner.SubjectID, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, rec.Result, got[0].Result)
	assert.Equal(t, rec.InputText, got[0].InputText)
	assert.Equal(t, rec.UseCaseID, got[0].UseCaseID)
	assert.Equal(t, rec.UseCaseName, got[0].UseCaseName)
	assert.Equal(t, rec.OwnerEmail, got[0].OwnerEmail)
	require.NotNil(t, got[0].TargetLanguage)
	assert.Equal(t, lang, *got[0].TargetLanguage)
	assert.True(t, rec.CreatedAt.Equal(got[0].CreatedAt))
}

func TestIntegration_ListByOwner_NewestFirst(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	owner := testhelper.SeedProfile(t, pool)
	other := testhelper.SeedProfile(t, pool)

	base := time.Now().UTC().Add(-time.Hour)
	// Seeded out of order on purpose.
	for _, offset := range []int{3, 0, 4, 1, 2} {
		testhelper.SeedRecord(t, pool, owner.SubjectID, base.Add(time.Duration(offset)*time.Minute))
	}
	testhelper.SeedRecord(t, pool, other.SubjectID, base.Add(10*time.Minute))

	got, err := repo.ListByOwner(context.Background(), owner.SubjectID, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 5)

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt),
			"record %d (%s) not newer than record %d (%s)", i-1, got[i-1].CreatedAt, i, got[i].CreatedAt)
	}
	for _, r := range got {
		assert.Equal(t, owner.SubjectID, r.SubjectID)
	}
}

func TestIntegration_ListByOwner_PaginationWindow(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	owner := testhelper.SeedProfile(t, pool)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := range 9 {
		testhelper.SeedRecord(t, pool, owner.SubjectID, base.Add(time.Duration(i)*time.Minute))
	}

	const skip, limit = 3, 4

	window, err := repo.ListByOwner(ctx, owner.SubjectID, limit, skip)
	require.NoError(t, err)
	require.Len(t, window, limit)

	full, err := repo.ListByOwner(ctx, owner.SubjectID, skip+limit, 0)
	require.NoError(t, err)
	require.Len(t, full, skip+limit)

	for i := range window {
		assert.Equal(t, full[skip+i].ID, window[i].ID)
	}

	beyond, err := repo.ListByOwner(ctx, owner.SubjectID, limit, 100)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestIntegration_CountByOwner(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	owner := testhelper.SeedProfile(t, pool)

	n, err := repo.CountByOwner(context.Background(), owner.SubjectID)
	require.NoError(t, err)
	assert.Zero(t, n)

	testhelper.SeedRecord(t, pool, owner.SubjectID, time.Now())
	testhelper.SeedRecord(t, pool, owner.SubjectID, time.Now())

	n, err = repo.CountByOwner(context.Background(), owner.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIntegration_DeleteByOwnerAndID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	owner := testhelper.SeedProfile(t, pool)
	intruder := testhelper.SeedProfile(t, pool)
	ctx := context.Background()

	rec := testhelper.SeedRecord(t, pool, owner.SubjectID, time.Now())

	deleted, err := repo.DeleteByOwnerAndID(ctx, intruder.SubjectID, rec.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "another subject must not delete the record")

	deleted, err = repo.DeleteByOwnerAndID(ctx, intruder.SubjectID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted, "nonexistent id reports the same as a foreign one")

	n, err := repo.CountByOwner(ctx, owner.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	deleted, err = repo.DeleteByOwnerAndID(ctx, owner.SubjectID, rec.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByOwnerAndID(ctx, owner.SubjectID, rec.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}
