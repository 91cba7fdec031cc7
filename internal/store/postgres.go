package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/itrgo/tax-estimator/internal/calculation"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS tax_records (
	id             UUID PRIMARY KEY,
	user_id        TEXT        NOT NULL,
	financial_year TEXT        NOT NULL,
	request        JSONB       NOT NULL,
	result         JSONB       NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tax_records_user_created_idx ON tax_records (user_id, created_at DESC);
`

// recordRow is the tax_records row; request and result are JSONB.
type recordRow struct {
	ID            uuid.UUID      `db:"id"`
	UserID        string         `db:"user_id"`
	FinancialYear string         `db:"financial_year"`
	Request       types.JSONText `db:"request"`
	Result        types.JSONText `db:"result"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// PostgresStore keeps records in PostgreSQL
type PostgresStore struct {
	db     *sqlx.DB
	logger calculation.Logger
}

// OpenPostgres connects to PostgreSQL and verifies the connection
func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not connect to the record database").
			Mark(ierr.ErrDatabase)
	}
	return db, nil
}

// NewPostgresStore creates a store over an open connection. If logger is nil,
// a no-op logger is used.
func NewPostgresStore(db *sqlx.DB, logger calculation.Logger) *PostgresStore {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &PostgresStore{db: db, logger: logger}
}

// Migrate creates the records table when it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return dbError(err, "migrate tax_records")
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := nowFunc()
	rec.CreatedAt, rec.UpdatedAt = now, now

	row, err := toRow(rec)
	if err != nil {
		return err
	}
	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO tax_records (id, user_id, financial_year, request, result, created_at, updated_at)
		VALUES (:id, :user_id, :financial_year, :request, :result, :created_at, :updated_at)`, row)
	if err != nil {
		return dbError(err, "insert record")
	}
	s.logger.Debugf("saved record %s for user %s", rec.ID, rec.UserID)
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string, id uuid.UUID) (*Record, error) {
	var row recordRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, financial_year, request, result, created_at, updated_at
		FROM tax_records WHERE id = $1 AND user_id = $2`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, dbError(err, "get record")
	}
	return fromRow(row)
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]*Record, error) {
	var rows []recordRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, financial_year, request, result, created_at, updated_at
		FROM tax_records WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, dbError(err, "list records")
	}
	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *PostgresStore) Update(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = nowFunc()
	row, err := toRow(rec)
	if err != nil {
		return err
	}
	stmt, err := s.db.PrepareNamedContext(ctx, `
		UPDATE tax_records
		SET financial_year = :financial_year, request = :request, result = :result, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
		RETURNING created_at`)
	if err != nil {
		return dbError(err, "prepare update")
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &rec.CreatedAt, row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(rec.ID)
		}
		return dbError(err, "update record")
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tax_records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return dbError(err, "delete record")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbError(err, "delete record")
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func toRow(rec *Record) (recordRow, error) {
	request, err := json.Marshal(rec.Request)
	if err != nil {
		return recordRow{}, ierr.WithError(err).WithMessage("encode request").Mark(ierr.ErrSystem)
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return recordRow{}, ierr.WithError(err).WithMessage("encode result").Mark(ierr.ErrSystem)
	}
	return recordRow{
		ID:            rec.ID,
		UserID:        rec.UserID,
		FinancialYear: rec.FinancialYear,
		Request:       types.JSONText(request),
		Result:        types.JSONText(result),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}, nil
}

func fromRow(row recordRow) (*Record, error) {
	rec := &Record{
		ID:            row.ID,
		UserID:        row.UserID,
		FinancialYear: row.FinancialYear,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if err := row.Request.Unmarshal(&rec.Request); err != nil {
		return nil, dbError(err, "decode stored request")
	}
	if err := row.Result.Unmarshal(&rec.Result); err != nil {
		return nil, dbError(err, "decode stored result")
	}
	return rec, nil
}

func dbError(err error, op string) error {
	return ierr.WithError(err).
		WithMessage(op).
		WithHint("The record database is unavailable").
		Mark(ierr.ErrDatabase)
}
