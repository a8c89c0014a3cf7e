// Package pack implements the packing core: the file and disk model and
// the first-fit-descending heuristic that assigns files to disks.
package pack

import "sort"

// MaxDisks is the largest number of disks the materialization format can
// address: disk directories are named with four zero-padded digits.
const MaxDisks = 9999

// FileEntry is one discovered regular file. Entries are created by the
// collector, validated against the disk capacity there, and immutable
// afterwards. Path is the entry's identity.
type FileEntry struct {
	Path string
	Size int64
}

// Disk is a capacity-bounded container of files. Free is the remaining
// capacity in bytes and never goes negative. Files holds entries in
// assignment order, which is not size order.
type Disk struct {
	ID    int
	Free  int64
	Files []FileEntry
}

func (d *Disk) add(f FileEntry) {
	d.Files = append(d.Files, f)
	d.Free -= f.Size
}

// Packer assigns files to disks of a single capacity. It owns the disk
// ID counter, so independent packers in one process number their disks
// independently and deterministically.
type Packer struct {
	capacity int64
	nextID   int
}

// NewPacker returns a packer for the given disk capacity in bytes. The
// capacity must be positive and every file offered to Fit must already
// fit on an empty disk; the collector enforces both before packing.
func NewPacker(capacity int64) *Packer {
	return &Packer{capacity: capacity}
}

func (p *Packer) newDisk() *Disk {
	p.nextID++
	return &Disk{ID: p.nextID, Free: p.capacity}
}

// Fit sorts files by size descending and places each on the first disk
// with enough room, opening a fresh disk when none fits. Seating the
// largest files first rapidly fills disks while the small remainder
// usually plugs the gaps. This is a heuristic, not an optimal packing.
//
// Equal-size files keep their input order (stable sort), so packing the
// same collection twice yields the same layout. The input slice is not
// modified. Disks are returned in creation order with sequential IDs.
func (p *Packer) Fit(files []FileEntry) []*Disk {
	sorted := make([]FileEntry, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})

	var disks []*Disk
	for _, f := range sorted {
		placed := false
		for _, d := range disks {
			if d.Free >= f.Size {
				d.add(f)
				placed = true
				break
			}
		}
		if !placed {
			d := p.newDisk()
			d.add(f)
			disks = append(disks, d)
		}
	}
	return disks
}
