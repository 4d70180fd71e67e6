// Package persistence stores serialized game snapshots. The primary store
// is SQLite; a compressed file store acts as the local fallback so a save
// never stalls or kills the session.
package persistence

import (
	"log/slog"

	"github.com/talgya/isle-city/internal/game"
)

// Store persists and recovers save blobs. Save is best-effort from the
// caller's point of view; Load reports found=false for an empty store.
type Store interface {
	Save(blob *game.SaveBlob) error
	Load() (blob *game.SaveBlob, found bool, err error)
	Close() error
}

// Fallback chains a primary store with a local fallback: saves try the
// primary first, loads prefer the primary. A failure of one side is logged
// and absorbed; only a total failure of both surfaces an error.
type Fallback struct {
	Primary Store
	Local   Store
}

// Save writes to the primary and, if that fails, to the fallback.
func (f *Fallback) Save(blob *game.SaveBlob) error {
	perr := f.Primary.Save(blob)
	if perr == nil {
		return nil
	}
	slog.Warn("primary save failed, falling back", "error", perr)
	if lerr := f.Local.Save(blob); lerr != nil {
		slog.Error("fallback save failed", "error", lerr)
		return lerr
	}
	return nil
}

// Load reads the primary, falling back to the local store when the
// primary errors or is empty.
func (f *Fallback) Load() (*game.SaveBlob, bool, error) {
	blob, found, err := f.Primary.Load()
	if err == nil && found {
		return blob, true, nil
	}
	if err != nil {
		slog.Warn("primary load failed, falling back", "error", err)
	}
	return f.Local.Load()
}

// Close closes both stores, returning the first error.
func (f *Fallback) Close() error {
	perr := f.Primary.Close()
	lerr := f.Local.Close()
	if perr != nil {
		return perr
	}
	return lerr
}
