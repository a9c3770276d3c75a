package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

// maxUpdateAttempts bounds the read-mutate-write loop of WithRetry.
const maxUpdateAttempts = 3

// EntityWithVersion is a row guarded by a row_version column. T must be
// comparable so a missing row (the zero T) can be detected.
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

// UpdateIfVersionFunc writes entity only when its stored row_version still
// equals expectedVersion; zero rows affected means a concurrent writer won.
type UpdateIfVersionFunc[T EntityWithVersion] func(ctx context.Context, entity T, expectedVersion int64) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(ctx context.Context, id string) (T, error)

// WithRetry loads the row, applies mutate and writes it back guarded by the
// version it read, starting over when another writer got in first.
//
// The returned error is pgx.ErrNoRows for a missing row, whatever mutate
// returned if it refused the change, or utils.ErrRowVersionConflict once
// maxAttempts writes have lost the race.
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxAttempts int,
	id string,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	var zero T
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		entity, err := getByID(ctx, id)
		if err != nil {
			return err
		}
		if entity == zero {
			return pgx.ErrNoRows
		}

		readVersion := entity.GetRowVersion()
		if err := mutate(entity); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, entity, readVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			entity.SetRowVersion(readVersion + 1)
			return nil
		}
		utils.Logger.WithField("id", id).Debugf("row_version %d is stale, attempt %d/%d", readVersion, attempt, maxAttempts)
	}
	return errors.Wrapf(utils.ErrRowVersionConflict, "gave up updating %q after %d attempts", id, maxAttempts)
}

// versionedTable knows how to load one T by id, which is all WithRetry needs
// besides the entity-specific conditional update.
type versionedTable[T EntityWithVersion] struct {
	db         DB
	selectByID string
	scan       func(row pgx.Row) (T, error)
}

func newVersionedTable[T EntityWithVersion](db DB, selectByID string, scan func(pgx.Row) (T, error)) versionedTable[T] {
	return versionedTable[T]{db: db, selectByID: selectByID, scan: scan}
}

func (t versionedTable[T]) load(ctx context.Context, id string) (T, error) {
	return t.scan(t.db.QueryRow(ctx, t.selectByID, id))
}

func (t versionedTable[T]) updateWithRetry(ctx context.Context, id string, mutate func(T) error, updateIfVersion UpdateIfVersionFunc[T]) error {
	return WithRetry(ctx, maxUpdateAttempts, id, t.load, updateIfVersion, mutate)
}
