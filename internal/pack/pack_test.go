package pack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_FirstFitDescending(t *testing.T) {
	files := []FileEntry{
		{Path: "a", Size: 4},
		{Path: "b", Size: 4},
		{Path: "c", Size: 4},
		{Path: "d", Size: 2},
	}

	disks := NewPacker(10).Fit(files)
	require.Len(t, disks, 2)

	// a and b fill disk 1 to 2 free; c opens disk 2; d plugs disk 1.
	assert.Equal(t, 1, disks[0].ID)
	assert.Equal(t, []FileEntry{{Path: "a", Size: 4}, {Path: "b", Size: 4}, {Path: "d", Size: 2}}, disks[0].Files)
	assert.Equal(t, int64(0), disks[0].Free)

	assert.Equal(t, 2, disks[1].ID)
	assert.Equal(t, []FileEntry{{Path: "c", Size: 4}}, disks[1].Files)
	assert.Equal(t, int64(6), disks[1].Free)
}

func TestFit_ExactFit(t *testing.T) {
	disks := NewPacker(1000).Fit([]FileEntry{{Path: "full", Size: 1000}})
	require.Len(t, disks, 1)
	assert.Equal(t, int64(0), disks[0].Free)
	assert.Len(t, disks[0].Files, 1)
}

func TestFit_EmptyInput(t *testing.T) {
	disks := NewPacker(1000).Fit(nil)
	assert.Empty(t, disks)
}

func TestFit_EveryFileExactlyOnce(t *testing.T) {
	const capacity = int64(100)
	var files []FileEntry
	for i, size := range []int64{90, 60, 55, 45, 40, 33, 20, 10, 10, 7, 5, 2, 1, 0} {
		files = append(files, FileEntry{Path: fmt.Sprintf("f%d", i), Size: size})
	}

	disks := NewPacker(capacity).Fit(files)
	require.NotEmpty(t, disks)

	seen := make(map[string]int)
	for _, d := range disks {
		var sum int64
		for _, f := range d.Files {
			seen[f.Path]++
			sum += f.Size
		}
		assert.LessOrEqual(t, sum, capacity, "disk %d over capacity", d.ID)
		assert.Equal(t, capacity-sum, d.Free, "disk %d free mismatch", d.ID)
		assert.GreaterOrEqual(t, d.Free, int64(0))
	}

	require.Len(t, seen, len(files))
	for path, count := range seen {
		assert.Equal(t, 1, count, "file %s placed %d times", path, count)
	}
}

func TestFit_Deterministic(t *testing.T) {
	files := []FileEntry{
		{Path: "x", Size: 50},
		{Path: "y", Size: 50}, // equal sizes keep input order
		{Path: "z", Size: 30},
	}

	first := NewPacker(100).Fit(files)
	second := NewPacker(100).Fit(files)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Free, second[i].Free)
		assert.Equal(t, first[i].Files, second[i].Files)
	}
}

func TestFit_DoesNotMutateInput(t *testing.T) {
	files := []FileEntry{
		{Path: "small", Size: 1},
		{Path: "big", Size: 9},
	}

	NewPacker(10).Fit(files)

	assert.Equal(t, "small", files[0].Path)
	assert.Equal(t, "big", files[1].Path)
}

func TestPacker_IDCounterSpansFits(t *testing.T) {
	p := NewPacker(10)

	first := p.Fit([]FileEntry{{Path: "a", Size: 10}, {Path: "b", Size: 10}})
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].ID)
	assert.Equal(t, 2, first[1].ID)

	// The same session keeps counting; a fresh packer starts over.
	second := p.Fit([]FileEntry{{Path: "c", Size: 10}})
	require.Len(t, second, 1)
	assert.Equal(t, 3, second[0].ID)

	fresh := NewPacker(10).Fit([]FileEntry{{Path: "d", Size: 10}})
	require.Len(t, fresh, 1)
	assert.Equal(t, 1, fresh[0].ID)
}

func TestFit_AssignmentOrderNotSizeOrder(t *testing.T) {
	files := []FileEntry{
		{Path: "tiny", Size: 2},
		{Path: "large", Size: 8},
		{Path: "medium", Size: 7},
	}

	disks := NewPacker(10).Fit(files)
	require.Len(t, disks, 2)

	// large seats first, medium opens disk 2, tiny lands back on disk 1.
	assert.Equal(t, []FileEntry{{Path: "large", Size: 8}, {Path: "tiny", Size: 2}}, disks[0].Files)
	assert.Equal(t, []FileEntry{{Path: "medium", Size: 7}}, disks[1].Files)
}
