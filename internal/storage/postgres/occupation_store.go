package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// DefaultTable is the occupation table name.
const DefaultTable = "occupations"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const columns = `code,
	display_title,
	raw_query_title,
	normalized_title,
	category,
	current_employment,
	projected_employment,
	percent_change,
	annual_openings,
	median_wage,
	mean_wage,
	data_year,
	projection_base_year,
	projection_end_year,
	raw_source_payloads,
	messages,
	last_fetch_timestamp,
	last_write_timestamp`

type pool interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// OccupationStore reads and writes occupation rows.
type OccupationStore struct {
	pool  pool
	table string
}

// NewOccupationStore wraps an existing pool. An empty table selects DefaultTable.
func NewOccupationStore(p pool, table string) (*OccupationStore, error) {
	if p == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = DefaultTable
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &OccupationStore{pool: p, table: table}, nil
}

// Close releases the underlying pool resources.
func (s *OccupationStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// EnsureSchema creates the table and title index when missing. Safe to run repeatedly.
func (s *OccupationStore) EnsureSchema(ctx context.Context) error {
	table := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	code TEXT PRIMARY KEY,
	display_title TEXT NOT NULL,
	raw_query_title TEXT NOT NULL,
	normalized_title TEXT NOT NULL,
	category TEXT NOT NULL,
	current_employment BIGINT NULL,
	projected_employment BIGINT NULL,
	percent_change DOUBLE PRECISION NULL,
	annual_openings BIGINT NULL,
	median_wage DOUBLE PRECISION NULL,
	mean_wage DOUBLE PRECISION NULL,
	data_year TEXT NOT NULL DEFAULT '',
	projection_base_year TEXT NOT NULL DEFAULT '',
	projection_end_year TEXT NOT NULL DEFAULT '',
	raw_source_payloads JSONB NULL,
	messages JSONB NOT NULL DEFAULT '[]'::jsonb,
	last_fetch_timestamp TIMESTAMPTZ NOT NULL,
	last_write_timestamp TIMESTAMPTZ NOT NULL
)`, s.table)
	if _, err := s.pool.Exec(ctx, table); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	index := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_normalized_title_idx ON %s (normalized_title)`, s.table, s.table)
	if _, err := s.pool.Exec(ctx, index); err != nil {
		return fmt.Errorf("create title index: %w", err)
	}
	return nil
}

// Upsert inserts rec or replaces every non-key column of the existing row.
// The write stamp never moves backwards; the stored stamp is returned.
func (s *OccupationStore) Upsert(ctx context.Context, rec occupation.Record) (time.Time, error) {
	if rec.Code == "" {
		return time.Time{}, fmt.Errorf("record code is required")
	}
	messages, err := json.Marshal(nonNilMessages(rec.Messages))
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal messages: %w", err)
	}
	var payloads []byte
	if len(rec.RawPayloads) > 0 {
		payloads = rec.RawPayloads
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	%s
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18
)
ON CONFLICT (code) DO UPDATE SET
	display_title = EXCLUDED.display_title,
	raw_query_title = EXCLUDED.raw_query_title,
	normalized_title = EXCLUDED.normalized_title,
	category = EXCLUDED.category,
	current_employment = EXCLUDED.current_employment,
	projected_employment = EXCLUDED.projected_employment,
	percent_change = EXCLUDED.percent_change,
	annual_openings = EXCLUDED.annual_openings,
	median_wage = EXCLUDED.median_wage,
	mean_wage = EXCLUDED.mean_wage,
	data_year = EXCLUDED.data_year,
	projection_base_year = EXCLUDED.projection_base_year,
	projection_end_year = EXCLUDED.projection_end_year,
	raw_source_payloads = EXCLUDED.raw_source_payloads,
	messages = EXCLUDED.messages,
	last_fetch_timestamp = EXCLUDED.last_fetch_timestamp,
	last_write_timestamp = GREATEST(%s.last_write_timestamp, EXCLUDED.last_write_timestamp)
RETURNING last_write_timestamp`, s.table, columns, s.table)

	args := []any{
		rec.Code,
		rec.DisplayTitle,
		rec.RawQueryTitle,
		rec.NormalizedTitle,
		string(rec.Category),
		rec.CurrentEmployment,
		rec.ProjectedEmployment,
		rec.PercentChange,
		rec.AnnualOpenings,
		rec.MedianWage,
		rec.MeanWage,
		rec.DataYear,
		rec.ProjectionBaseYear,
		rec.ProjectionEndYear,
		payloads,
		messages,
		rec.LastFetchedAt.UTC(),
		rec.LastWrittenAt.UTC(),
	}
	var written time.Time
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&written); err != nil {
		return time.Time{}, fmt.Errorf("upsert occupation %s: %w", rec.Code, err)
	}
	return written.UTC(), nil
}

// Get loads the row for code.
func (s *OccupationStore) Get(ctx context.Context, code string) (occupation.Record, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE code = $1`, columns, s.table)
	rec, err := scanRecord(s.pool.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return occupation.Record{}, false, nil
	}
	if err != nil {
		return occupation.Record{}, false, fmt.Errorf("select occupation %s: %w", code, err)
	}
	return rec, true, nil
}

// FindByTitle matches the stored normalized title or the lowercased display
// and query titles. The most recently fetched match wins.
func (s *OccupationStore) FindByTitle(ctx context.Context, normalized string) (occupation.Record, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(normalized))
	if needle == "" {
		return occupation.Record{}, false, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s
WHERE normalized_title = $1 OR lower(display_title) = $1 OR lower(raw_query_title) = $1
ORDER BY last_fetch_timestamp DESC
LIMIT 1`, columns, s.table)
	rec, err := scanRecord(s.pool.QueryRow(ctx, query, needle))
	if errors.Is(err, pgx.ErrNoRows) {
		return occupation.Record{}, false, nil
	}
	if err != nil {
		return occupation.Record{}, false, fmt.Errorf("find occupation by title: %w", err)
	}
	return rec, true, nil
}

// Ping checks connectivity.
func (s *OccupationStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (occupation.Record, error) {
	var (
		rec      occupation.Record
		category string
		payloads []byte
		messages []byte
	)
	err := row.Scan(
		&rec.Code,
		&rec.DisplayTitle,
		&rec.RawQueryTitle,
		&rec.NormalizedTitle,
		&category,
		&rec.CurrentEmployment,
		&rec.ProjectedEmployment,
		&rec.PercentChange,
		&rec.AnnualOpenings,
		&rec.MedianWage,
		&rec.MeanWage,
		&rec.DataYear,
		&rec.ProjectionBaseYear,
		&rec.ProjectionEndYear,
		&payloads,
		&messages,
		&rec.LastFetchedAt,
		&rec.LastWrittenAt,
	)
	if err != nil {
		return occupation.Record{}, err
	}
	rec.Category = occupation.ParseCategory(category)
	if len(payloads) > 0 {
		rec.RawPayloads = payloads
	}
	if len(messages) > 0 {
		if err := json.Unmarshal(messages, &rec.Messages); err != nil {
			return occupation.Record{}, fmt.Errorf("decode messages: %w", err)
		}
	}
	if len(rec.Messages) == 0 {
		rec.Messages = nil
	}
	rec.LastFetchedAt = rec.LastFetchedAt.UTC()
	rec.LastWrittenAt = rec.LastWrittenAt.UTC()
	return rec, nil
}

func nonNilMessages(m []string) []string {
	if m == nil {
		return []string{}
	}
	return m
}
