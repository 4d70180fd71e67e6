package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/isle-city/internal/game"
)

// File persists the snapshot as zstd-compressed JSON at a fixed path,
// written atomically via a temp file rename.
type File struct {
	Path string
}

// NewFile creates a file store at path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Save writes the compressed snapshot.
func (f *File) Save(blob *game.SaveBlob) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("save dir: %w", err)
	}
	tmp := f.Path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create save file: %w", err)
	}
	defer os.Remove(tmp)

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		out.Close()
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(blob); err != nil {
		enc.Close()
		out.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close save file: %w", err)
	}
	return os.Rename(tmp, f.Path)
}

// Load reads the compressed snapshot. found is false when no file exists.
func (f *File) Load() (*game.SaveBlob, bool, error) {
	in, err := os.Open(f.Path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open save file: %w", err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return nil, false, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var blob game.SaveBlob
	if err := json.NewDecoder(dec.IOReadCloser()).Decode(&blob); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &blob, true, nil
}

// Close is a no-op; the file store holds no open handles between calls.
func (f *File) Close() error {
	return nil
}
