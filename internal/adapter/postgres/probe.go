package postgres

import (
	"context"
	"fmt"
)

// indexStatements re-assert the indexes the history queries rely on.
var indexStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_profiles_subject_id ON user_profiles (subject_id)`,
	`CREATE INDEX IF NOT EXISTS ix_analysis_records_subject_created ON analysis_records (subject_id, created_at DESC, id DESC)`,
}

// StoreInfo describes the connected database for diagnostics.
type StoreInfo struct {
	Database string
	Indexes  []string
}

// Prober checks store health.
type Prober struct {
	db Querier
}

// NewProber creates a Prober.
func NewProber(db Querier) *Prober {
	return &Prober{db: db}
}

// Probe pings the database, idempotently re-creates the required indexes
// and lists the indexes present on the history tables.
func (p *Prober) Probe(ctx context.Context) (StoreInfo, error) {
	var info StoreInfo

	if err := p.db.QueryRow(ctx, `SELECT current_database()`).Scan(&info.Database); err != nil {
		return info, fmt.Errorf("ping: %w", err)
	}

	for _, stmt := range indexStatements {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return info, fmt.Errorf("ensure index: %w", err)
		}
	}

	sql, args, err := Builder().
		Select("indexname").
		From("pg_indexes").
		Where("tablename IN (?, ?)", "user_profiles", "analysis_records").
		OrderBy("indexname").
		ToSql()
	if err != nil {
		return info, fmt.Errorf("build index query: %w", err)
	}

	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return info, fmt.Errorf("list indexes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return info, fmt.Errorf("scan index: %w", err)
		}
		info.Indexes = append(info.Indexes, name)
	}
	if err := rows.Err(); err != nil {
		return info, fmt.Errorf("list indexes: %w", err)
	}

	return info, nil
}
