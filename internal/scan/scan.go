// Package scan discovers regular files beneath one or more root paths
// and validates each against the configured disk capacity.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diskfit/diskfit/internal/pack"
	"github.com/diskfit/diskfit/internal/stats"
	"github.com/diskfit/diskfit/internal/unit"
)

// FileTooLargeError reports a file bigger than the configured disk
// capacity. No packing outcome can ever place it, so collection stops
// instead of skipping.
type FileTooLargeError struct {
	Path string
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("can never fit %q (%s)", e.Path, unit.FormatSize(e.Size))
}

// UnsupportedEntryError reports a directory entry that is neither a
// regular file nor a directory after following symlinks.
type UnsupportedEntryError struct {
	Path string
}

func (e *UnsupportedEntryError) Error() string {
	return fmt.Sprintf("%q is not a regular file", e.Path)
}

// Collector accumulates file entries across Collect calls. The capacity
// is carried explicitly so multiple collectors with different capacities
// can coexist in one process.
type Collector struct {
	capacity int64
	stats    *stats.Collector
	files    []pack.FileEntry
}

// NewCollector returns a collector for the given disk capacity in bytes.
// st may be nil.
func NewCollector(capacity int64, st *stats.Collector) *Collector {
	return &Collector{capacity: capacity, stats: st}
}

// Files returns everything collected so far, in discovery order. The
// packer imposes its own ordering, so none is guaranteed here.
func (c *Collector) Files() []pack.FileEntry {
	return c.files
}

// Collect walks root and records every regular file found. Directories
// are entered only when recursive is set. Any entry that resolves to
// something other than a regular file or directory is fatal, as is any
// unreadable directory or unstatable entry.
func (c *Collector) Collect(ctx context.Context, root string, recursive bool) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read directory %q: %w", root, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(root, entry.Name())

		// Stat, not lstat: a symlink to a regular file packs like the
		// file it points at.
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %q: %w", path, err)
		}

		switch {
		case info.Mode().IsRegular():
			if info.Size() > c.capacity {
				return &FileTooLargeError{Path: path, Size: info.Size()}
			}
			c.files = append(c.files, pack.FileEntry{Path: path, Size: info.Size()})
			if c.stats != nil {
				c.stats.AddFilesCollected(1)
				c.stats.AddBytesCollected(info.Size())
			}

		case info.IsDir():
			if recursive {
				if err := c.Collect(ctx, path, recursive); err != nil {
					return err
				}
			}

		default:
			return &UnsupportedEntryError{Path: path}
		}
	}

	return nil
}
