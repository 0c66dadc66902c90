// Package history implements the analysis history store using PostgreSQL.
package history

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/summarizer-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

const (
	table  = "analysis_records"
	entity = "analysis_record"
)

var columns = []string{
	"id", "subject_id", "owner_email", "usecase_id", "usecase_name",
	"input_text", "result", "target_language", "created_at",
}

// row is the scan target for analysis_records.
type row struct {
	ID             uuid.UUID `db:"id"`
	SubjectID      string    `db:"subject_id"`
	OwnerEmail     string    `db:"owner_email"`
	UseCaseID      string    `db:"usecase_id"`
	UseCaseName    string    `db:"usecase_name"`
	InputText      string    `db:"input_text"`
	Result         string    `db:"result"`
	TargetLanguage *string   `db:"target_language"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r row) toDomain() domain.AnalysisRecord {
	return domain.AnalysisRecord{
		ID:             r.ID,
		SubjectID:      r.SubjectID,
		OwnerEmail:     r.OwnerEmail,
		UseCaseID:      r.UseCaseID,
		UseCaseName:    r.UseCaseName,
		InputText:      r.InputText,
		Result:         r.Result,
		TargetLanguage: r.TargetLanguage,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

// Repo provides analysis record persistence.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Insert stores rec and returns the generated record id. A zero CreatedAt
// defers to the database clock.
func (r *Repo) Insert(ctx context.Context, rec domain.AnalysisRecord) (uuid.UUID, error) {
	cols := []string{"subject_id", "owner_email", "usecase_id", "usecase_name", "input_text", "result", "target_language"}
	vals := []any{rec.SubjectID, rec.OwnerEmail, rec.UseCaseID, rec.UseCaseName, rec.InputText, rec.Result, rec.TargetLanguage}
	if !rec.CreatedAt.IsZero() {
		cols = append(cols, "created_at")
		vals = append(vals, rec.CreatedAt)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert: %w", err)
	}

	var id uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, entity, rec.SubjectID)
	}
	return id, nil
}

// ListByOwner returns the subject's records newest first.
func (r *Repo) ListByOwner(ctx context.Context, subjectID string, limit, offset int) ([]domain.AnalysisRecord, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"subject_id": subjectID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, subjectID)
	}

	out := make([]domain.AnalysisRecord, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// CountByOwner returns the number of records the subject owns.
func (r *Repo) CountByOwner(ctx context.Context, subjectID string) (int, error) {
	query, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(sq.Eq{"subject_id": subjectID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, subjectID)
	}
	return int(n), nil
}

// DeleteByOwnerAndID deletes a record only when it belongs to subjectID.
// A missing record and a record owned by someone else both report false.
func (r *Repo) DeleteByOwnerAndID(ctx context.Context, subjectID string, id uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id, "subject_id": subjectID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, entity, id.String())
	}
	return tag.RowsAffected() == 1, nil
}
