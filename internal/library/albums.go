package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pencast/internal/album"
	"pencast/internal/oid"
)

// CreateAlbum allocates a fresh album id and stores the entry with its
// tracks, all inside one transaction. An id collision with a concurrent
// creator is retried once.
func (s *Store) CreateAlbum(ctx context.Context, entry NewAlbum) (*Album, error) {
	if err := entry.validate(); err != nil {
		return nil, err
	}
	ctx = ensureContext(ctx)

	var created *Album
	create := func(view *txStore) error {
		id, err := oid.AllocateAlbumID(ctx, view)
		if err != nil {
			return err
		}
		tx := view.tx
		now := time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			"UPDATE albums SET title = ?, artist = ?, playback_mode = ?, updated_at = ? WHERE id = ?",
			entry.Title, entry.Artist, string(entry.Mode), now.Format(time.RFC3339Nano), int(id),
		)
		if err != nil {
			return fmt.Errorf("store album %d: %w", id, err)
		}
		for i, tr := range entry.Tracks {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO tracks (album_id, position, disc, track_number, source_file, title, duration_ms)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				int(id), i, tr.Disc, tr.Number, tr.SourceFile, tr.Title, tr.DurationMS,
			)
			if err != nil {
				return fmt.Errorf("store track %d of album %d: %w", i, id, err)
			}
		}
		created = &Album{
			ID:         id,
			Title:      entry.Title,
			Artist:     entry.Artist,
			Mode:       entry.Mode,
			Tracks:     append([]album.Track(nil), entry.Tracks...),
			TrackCount: len(entry.Tracks),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return nil
	}

	err := s.withAllocTx(ctx, create)
	if errors.Is(err, oid.ErrDuplicate) {
		err = s.withAllocTx(ctx, create)
		if errors.Is(err, oid.ErrDuplicate) {
			return nil, fmt.Errorf("%w: album id allocation collided twice", oid.ErrSpaceExhausted)
		}
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAlbum loads one album with its tracks in stored order.
func (s *Store) GetAlbum(ctx context.Context, id oid.AlbumID) (*Album, error) {
	ctx = ensureContext(ctx)

	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, artist, playback_mode, created_at, updated_at FROM albums WHERE id = ?",
		int(id),
	)
	entry, err := scanAlbum(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrAlbumNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT disc, track_number, source_file, title, duration_ms
         FROM tracks WHERE album_id = ? ORDER BY position`,
		int(id),
	)
	if err != nil {
		return nil, fmt.Errorf("load tracks for album %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr album.Track
		if err := rows.Scan(&tr.Disc, &tr.Number, &tr.SourceFile, &tr.Title, &tr.DurationMS); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		entry.Tracks = append(entry.Tracks, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	entry.TrackCount = len(entry.Tracks)
	return entry, nil
}

// ListAlbums returns all albums ordered by id, without track details.
func (s *Store) ListAlbums(ctx context.Context) ([]Album, error) {
	ctx = ensureContext(ctx)

	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.title, a.artist, a.playback_mode, a.created_at, a.updated_at,
                COUNT(t.album_id)
         FROM albums a
         LEFT JOIN tracks t ON t.album_id = a.id
         GROUP BY a.id
         ORDER BY a.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var entry Album
		var id int
		var mode, createdRaw, updatedRaw string
		if err := rows.Scan(&id, &entry.Title, &entry.Artist, &mode, &createdRaw, &updatedRaw, &entry.TrackCount); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		entry.ID = oid.AlbumID(id)
		entry.Mode = album.PlaybackMode(mode)
		entry.CreatedAt = parseTimestamp(createdRaw)
		entry.UpdatedAt = parseTimestamp(updatedRaw)
		albums = append(albums, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// DeleteAlbum removes an album and its tracks; the id becomes
// reusable.
func (s *Store) DeleteAlbum(ctx context.Context, id oid.AlbumID) error {
	ctx = ensureContext(ctx)

	res, err := s.db.ExecContext(ctx, "DELETE FROM albums WHERE id = ?", int(id))
	if err != nil {
		return fmt.Errorf("delete album %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete album %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrAlbumNotFound, id)
	}
	return nil
}

// SetPlaybackMode updates an album's playback mode.
func (s *Store) SetPlaybackMode(ctx context.Context, id oid.AlbumID, mode album.PlaybackMode) error {
	if _, err := album.ParsePlaybackMode(string(mode)); err != nil {
		return err
	}
	ctx = ensureContext(ctx)

	res, err := s.db.ExecContext(ctx,
		"UPDATE albums SET playback_mode = ?, updated_at = ? WHERE id = ?",
		string(mode), time.Now().UTC().Format(time.RFC3339Nano), int(id),
	)
	if err != nil {
		return fmt.Errorf("update playback mode for album %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update playback mode for album %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrAlbumNotFound, id)
	}
	return nil
}

func scanAlbum(row *sql.Row) (*Album, error) {
	var entry Album
	var id int
	var mode, createdRaw, updatedRaw string
	if err := row.Scan(&id, &entry.Title, &entry.Artist, &mode, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan album: %w", err)
	}
	entry.ID = oid.AlbumID(id)
	entry.Mode = album.PlaybackMode(mode)
	entry.CreatedAt = parseTimestamp(createdRaw)
	entry.UpdatedAt = parseTimestamp(updatedRaw)
	return &entry, nil
}

func parseTimestamp(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}
