package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"pencast/internal/oid"
)

// WithAllocTx runs fn against a transaction-scoped view of the
// identifier state. Allocations are read-then-decide-then-insert, so
// the whole sequence executes inside one transaction, serialized
// in-process by the allocation mutex and cross-process by SQLite's
// write lock.
func (s *Store) WithAllocTx(ctx context.Context, fn func(oid.Store) error) error {
	return s.withAllocTx(ctx, func(view *txStore) error { return fn(view) })
}

func (s *Store) withAllocTx(ctx context.Context, fn func(*txStore) error) error {
	ctx = ensureContext(ctx)
	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin alloc tx: %w", err)
		}
		if err := fn(&txStore{tx: tx}); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit alloc tx: %w", err)
		}
		return nil
	})
}

// ResolveActionCode returns the durable code for name, allocating one
// on first use. A duplicate-insert race is retried once with a fresh
// transaction; a second collision is escalated as fatal.
func (s *Store) ResolveActionCode(ctx context.Context, name string) (int, error) {
	var code int
	resolve := func(view oid.Store) error {
		var err error
		code, err = oid.ResolveActionCode(ctx, view, name)
		return err
	}

	err := s.WithAllocTx(ctx, resolve)
	if errors.Is(err, oid.ErrDuplicate) {
		err = s.WithAllocTx(ctx, resolve)
		if errors.Is(err, oid.ErrDuplicate) {
			return 0, fmt.Errorf("%w: action code allocation for %q collided twice", oid.ErrSpaceExhausted, name)
		}
	}
	if err != nil {
		return 0, err
	}
	return code, nil
}

// ActionCodes returns every assigned action code ordered by code
// ascending.
func (s *Store) ActionCodes(ctx context.Context) ([]oid.ActionCode, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT name, code FROM action_codes ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("list action codes: %w", err)
	}
	defer rows.Close()

	var codes []oid.ActionCode
	for rows.Next() {
		var ac oid.ActionCode
		if err := rows.Scan(&ac.Name, &ac.Code); err != nil {
			return nil, fmt.Errorf("scan action code: %w", err)
		}
		codes = append(codes, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action codes: %w", err)
	}
	return codes, nil
}

// txStore adapts one transaction to the oid.Store contract.
type txStore struct {
	tx *sql.Tx
}

func (t *txStore) AlbumIDs(ctx context.Context) ([]oid.AlbumID, error) {
	rows, err := t.tx.QueryContext(ctx, "SELECT id FROM albums ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list album ids: %w", err)
	}
	defer rows.Close()

	var ids []oid.AlbumID
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan album id: %w", err)
		}
		ids = append(ids, oid.AlbumID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album ids: %w", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (t *txStore) ActionCodes(ctx context.Context) (map[string]int, error) {
	rows, err := t.tx.QueryContext(ctx, "SELECT name, code FROM action_codes")
	if err != nil {
		return nil, fmt.Errorf("list action codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]int)
	for rows.Next() {
		var name string
		var code int
		if err := rows.Scan(&name, &code); err != nil {
			return nil, fmt.Errorf("scan action code: %w", err)
		}
		codes[name] = code
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action codes: %w", err)
	}
	return codes, nil
}

func (t *txStore) InsertAlbumID(ctx context.Context, id oid.AlbumID) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO albums (id, created_at, updated_at) VALUES (?, ?, ?)",
		int(id), now, now,
	)
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: album id %d", oid.ErrDuplicate, id)
	}
	if err != nil {
		return fmt.Errorf("insert album id %d: %w", id, err)
	}
	return nil
}

func (t *txStore) InsertActionCode(ctx context.Context, ac oid.ActionCode) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO action_codes (name, code) VALUES (?, ?)",
		ac.Name, ac.Code,
	)
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: action code %q=%d", oid.ErrDuplicate, ac.Name, ac.Code)
	}
	if err != nil {
		return fmt.Errorf("insert action code %q: %w", ac.Name, err)
	}
	return nil
}

var _ oid.Store = (*txStore)(nil)
