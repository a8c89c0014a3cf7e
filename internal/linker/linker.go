// Package linker materializes a packing result as hardlink trees: one
// numbered directory per disk, each file linked into place with its
// relative directory structure preserved. No data is copied.
package linker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/diskfit/diskfit/internal/pack"
	"github.com/diskfit/diskfit/internal/pathutil"
	"github.com/diskfit/diskfit/internal/stats"
)

// Linker creates hardlink trees under a destination directory.
type Linker struct {
	destDir string
	out     io.Writer
	stats   *stats.Collector
}

// New returns a linker rooted at destDir. Each created link is confirmed
// on out as "<source> -> <disk directory>". st may be nil.
func New(destDir string, out io.Writer, st *stats.Collector) *Linker {
	return &Linker{destDir: pathutil.Clean(destDir), out: out, stats: st}
}

// Link materializes every disk in order. Any failure aborts the run: a
// partial tree is misleading, so nothing is retried or salvaged.
func (l *Linker) Link(ctx context.Context, disks []*pack.Disk) error {
	for _, d := range disks {
		if err := l.linkDisk(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (l *Linker) linkDisk(ctx context.Context, d *pack.Disk) error {
	if d.ID > pack.MaxDisks {
		return fmt.Errorf("disk id %d too big for the 4-digit directory format", d.ID)
	}
	diskDir := pathutil.Clean(fmt.Sprintf("%s/%04d", l.destDir, d.ID))

	for _, f := range d.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		dest := filepath.Join(diskDir, f.Path)
		if err := l.makeDirs(filepath.Dir(dest)); err != nil {
			return err
		}
		// Cross-device link errors surface here verbatim; they are a
		// filesystem limitation, not something to retry.
		if err := os.Link(f.Path, dest); err != nil {
			return fmt.Errorf("link %q to %q: %w", f.Path, dest, err)
		}
		if l.stats != nil {
			l.stats.AddLinksCreated(1)
		}
		fmt.Fprintf(l.out, "%s -> %s\n", f.Path, diskDir)
	}

	return nil
}

// makeDirs creates path and any missing parents with owner-only access.
// A component that already exists must be a directory.
func (l *Linker) makeDirs(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%q is not a directory", path)
		}
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("stat %q: %w", path, err)
	}

	if parent := filepath.Dir(path); parent != path {
		if err := l.makeDirs(parent); err != nil {
			return err
		}
	}

	if err := os.Mkdir(path, 0o700); err != nil {
		return fmt.Errorf("create directory %q: %w", path, err)
	}
	if l.stats != nil {
		l.stats.AddDirsCreated(1)
	}
	return nil
}
