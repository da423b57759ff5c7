package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sorenhq/namevault/internal/log"
	"github.com/sorenhq/namevault/internal/pool"
	"github.com/sorenhq/namevault/internal/registry/domain"
)

// MappingRepository implements domain.Store on the mappings table.
//
// Every operation opens its own transaction scoped to that call; write
// transactions are committed only after the mutation succeeds, so any
// failure before commit leaves the record unchanged. The actual database
// work runs on the worker pool so blocking I/O never runs on the caller's
// goroutine.
type MappingRepository struct {
	db   *DB
	pool *pool.Pool
}

// NewMappingRepository creates a repository over db, dispatching I/O to p.
func NewMappingRepository(db *DB, p *pool.Pool) *MappingRepository {
	return &MappingRepository{db: db, pool: p}
}

// Ensure MappingRepository implements domain.Store.
var _ domain.Store = (*MappingRepository)(nil)

// CreateOrGet looks up name in a write transaction; if absent it mints a
// fresh identifier and persists it. An existing name either fails with
// AlreadyExistsError (rejectIfExists) or returns the stored identifier
// without mutation.
func (r *MappingRepository) CreateOrGet(ctx context.Context, name string, rejectIfExists bool) (uuid.UUID, error) {
	var uid uuid.UUID
	err := r.dispatch(ctx, func() error {
		tx, err := r.db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		existing, ok, err := getUID(tx, name)
		if err != nil {
			return err
		}
		if ok {
			if rejectIfExists {
				return &domain.AlreadyExistsError{Name: name}
			}
			uid = existing
			return nil
		}

		uid = uuid.New()
		if _, err := tx.Exec(`INSERT INTO mappings (name, uid) VALUES (?, ?)`, name, uid[:]); err != nil {
			return fmt.Errorf("inserting mapping: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing mapping: %w", err)
		}
		log.Debug(log.CatStore, "minted identifier", "name", name, "uid", uid)
		return nil
	})
	if err != nil {
		return uuid.UUID{}, err
	}
	return uid, nil
}

// Get returns the identifier for name, with ok=false if unmapped.
func (r *MappingRepository) Get(ctx context.Context, name string) (uuid.UUID, bool, error) {
	var (
		uid   uuid.UUID
		found bool
	)
	err := r.dispatch(ctx, func() error {
		tx, err := r.db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		uid, found, err = getUID(tx, name)
		return err
	})
	if err != nil {
		return uuid.UUID{}, false, err
	}
	return uid, found, nil
}

// Delete removes the mapping for name and returns the removed identifier,
// with ok=false and no mutation if the name is unmapped.
func (r *MappingRepository) Delete(ctx context.Context, name string) (uuid.UUID, bool, error) {
	var (
		uid   uuid.UUID
		found bool
	)
	err := r.dispatch(ctx, func() error {
		tx, err := r.db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		uid, found, err = getUID(tx, name)
		if err != nil || !found {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM mappings WHERE name = ?`, name); err != nil {
			return fmt.Errorf("deleting mapping: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing delete: %w", err)
		}
		log.Debug(log.CatStore, "removed mapping", "name", name, "uid", uid)
		return nil
	})
	if err != nil {
		return uuid.UUID{}, false, err
	}
	return uid, found, nil
}

// List materializes every (name, identifier) pair in store iteration
// order. A value that fails to decode surfaces as a CorruptEntryError.
func (r *MappingRepository) List(ctx context.Context) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.dispatch(ctx, func() error {
		tx, err := r.db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		rows, err := tx.Query(`SELECT name, uid FROM mappings`)
		if err != nil {
			return fmt.Errorf("listing mappings: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				name string
				raw  []byte
			)
			if err := rows.Scan(&name, &raw); err != nil {
				return fmt.Errorf("scanning mapping row: %w", err)
			}
			uid, err := domain.DecodeUID(name, raw)
			if err != nil {
				return err
			}
			entries = append(entries, domain.Entry{Name: name, UID: uid})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert unconditionally writes the mapping; last write wins.
func (r *MappingRepository) Insert(ctx context.Context, name string, uid uuid.UUID) error {
	return r.dispatch(ctx, func() error {
		tx, err := r.db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.Exec(
			`INSERT INTO mappings (name, uid) VALUES (?, ?)
			 ON CONFLICT (name) DO UPDATE SET uid = excluded.uid`,
			name, uid[:],
		)
		if err != nil {
			return fmt.Errorf("upserting mapping: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing upsert: %w", err)
		}
		log.Debug(log.CatStore, "restored mapping", "name", name, "uid", uid)
		return nil
	})
}

// Close is a no-op; the connection is owned by the DB struct.
func (r *MappingRepository) Close() error {
	return nil
}

// dispatch runs fn on the worker pool and unwraps its error.
func (r *MappingRepository) dispatch(ctx context.Context, fn func() error) error {
	var opErr error
	if err := r.pool.Dispatch(ctx, func() { opErr = fn() }); err != nil {
		return fmt.Errorf("dispatching store operation: %w", err)
	}
	return opErr
}

func getUID(tx *sql.Tx, name string) (uuid.UUID, bool, error) {
	var raw []byte
	err := tx.QueryRow(`SELECT uid FROM mappings WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.UUID{}, false, nil
	}
	if err != nil {
		return uuid.UUID{}, false, fmt.Errorf("looking up mapping: %w", err)
	}
	uid, err := domain.DecodeUID(name, raw)
	if err != nil {
		return uuid.UUID{}, false, err
	}
	return uid, true, nil
}
