// Package store persists computation records per user.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/itrgo/tax-estimator/internal/calculation"
	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/domain"
	ierr "github.com/itrgo/tax-estimator/internal/errors"
)

// Record is a saved computation: the request as submitted and the result it
// produced.
type Record struct {
	ID            uuid.UUID                 `json:"id"`
	UserID        string                    `json:"userId"`
	FinancialYear string                    `json:"financialYear"`
	Request       domain.ComputationRequest `json:"request"`
	Result        domain.ComputationResult  `json:"result"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

// RecordStore is implemented by the memory and postgres stores. Records are
// scoped to a user: a record owned by someone else is reported as not found.
type RecordStore interface {
	// Save assigns the ID when it is zero and stamps both timestamps.
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, userID string, id uuid.UUID) (*Record, error)
	// List returns the user's records, newest first.
	List(ctx context.Context, userID string) ([]*Record, error)
	// Update replaces request and result, keeping CreatedAt.
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

var nowFunc = func() time.Time { return time.Now().UTC() }

func notFound(id uuid.UUID) error {
	return ierr.NewErrorf("record %s not found", id).
		WithHint("Record not found").
		WithReportableDetails(map[string]any{"id": id.String()}).
		Mark(ierr.ErrNotFound)
}

// Open returns the store selected by the settings and a function that
// releases it. The postgres store is migrated before it is returned.
func Open(ctx context.Context, settings config.StoreSettings, logger calculation.Logger) (RecordStore, func() error, error) {
	switch settings.Driver {
	case "", "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	case "postgres":
		db, err := OpenPostgres(settings.DSN)
		if err != nil {
			return nil, nil, err
		}
		pg := NewPostgresStore(db, logger)
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, ierr.NewErrorf("unknown store driver %q", settings.Driver).
			WithHint("Store driver must be memory or postgres").
			Mark(ierr.ErrInvalidConfiguration)
	}
}
