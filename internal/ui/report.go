// Package ui renders packing results for humans and provides the slog
// fan-out handler used for file logging.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/diskfit/diskfit/internal/pack"
	"github.com/diskfit/diskfit/internal/unit"
)

// PrintReport renders every disk: a framed header with the disk's id and
// remaining capacity, then one row per file in assignment order.
func PrintReport(w io.Writer, disks []*pack.Disk, capacity int64) {
	for _, d := range disks {
		printDisk(w, d, capacity)
	}
}

func printDisk(w io.Writer, d *pack.Disk, capacity int64) {
	header := fmt.Sprintf("Disk #%d, %d%% (%s) free:",
		d.ID, d.Free*100/capacity, unit.FormatSize(d.Free))
	rule := strings.Repeat("-", len(header))

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)
	for _, f := range d.Files {
		fmt.Fprintf(w, "%10s %s\n", unit.FormatSize(f.Size), f.Path)
	}
	fmt.Fprintln(w)
}

// PrintCount reports only how many disks the fit takes.
func PrintCount(w io.Writer, n int) {
	plural := ""
	if n > 1 {
		plural = "s"
	}
	fmt.Fprintf(w, "%d disk%s.\n", n, plural)
}
