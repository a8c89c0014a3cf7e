// Package stats tracks counters for a single diskfit run.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks run statistics using atomic counters.
type Collector struct {
	filesCollected atomic.Int64
	bytesCollected atomic.Int64
	disksPacked    atomic.Int64
	dirsCreated    atomic.Int64
	linksCreated   atomic.Int64
	startTime      time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddFilesCollected(n int64) { c.filesCollected.Add(n) }
func (c *Collector) AddBytesCollected(n int64) { c.bytesCollected.Add(n) }
func (c *Collector) AddDirsCreated(n int64)    { c.dirsCreated.Add(n) }
func (c *Collector) AddLinksCreated(n int64)   { c.linksCreated.Add(n) }

// SetDisksPacked records the packing outcome (called once after Fit).
func (c *Collector) SetDisksPacked(n int64) { c.disksPacked.Store(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesCollected int64
	BytesCollected int64
	DisksPacked    int64
	DirsCreated    int64
	LinksCreated   int64
	Elapsed        time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesCollected: c.filesCollected.Load(),
		BytesCollected: c.bytesCollected.Load(),
		DisksPacked:    c.disksPacked.Load(),
		DirsCreated:    c.dirsCreated.Load(),
		LinksCreated:   c.linksCreated.Load(),
		Elapsed:        time.Since(c.startTime),
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d bytes=%d disks=%d dirs=%d links=%d elapsed=%s",
		s.FilesCollected, s.BytesCollected, s.DisksPacked,
		s.DirsCreated, s.LinksCreated, s.Elapsed.Round(time.Millisecond),
	)
}
