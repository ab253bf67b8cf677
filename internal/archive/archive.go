package archive

import (
	"context"
	"errors"
	"fmt"

	"orbplaylist/internal/logger"
	"orbplaylist/internal/playlist"
)

// Archiver applies the archival policy in front of a Store.
type Archiver struct {
	store Store
	log   *logger.Logger
}

// New creates an Archiver.
func New(store Store, log *logger.Logger) *Archiver {
	return &Archiver{
		store: store,
		log:   log,
	}
}

// Archive persists a record if the policy allows it and reports whether a
// file was written. Today's playlist (offset 0) is still filling in and is
// never archived; empty records and already-archived days are skipped.
func (a *Archiver) Archive(ctx context.Context, rec *playlist.Record) (bool, error) {
	if rec.DaysOffset == 0 {
		a.log.Debug("not archiving today's playlist", "station", rec.Station)
		return false, nil
	}
	if len(rec.Songs) == 0 {
		a.log.Debug("not archiving empty playlist", "station", rec.Station)
		return false, nil
	}

	key := rec.ArchiveKey()

	if ok, err := a.store.Exists(ctx, key); err != nil {
		return false, fmt.Errorf("checking archive %s: %w", key, err)
	} else if ok {
		a.log.Warn("already archived", "key", key)
		return false, nil
	}

	err := a.store.Create(ctx, key, rec.Content())
	if errors.Is(err, ErrExists) {
		// Lost a race with a concurrent invocation; the existing file wins.
		a.log.Warn("already archived", "key", key)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("writing archive %s: %w", key, err)
	}

	a.log.Info("archived playlist", "key", key, "songs", len(rec.Songs))
	return true, nil
}
