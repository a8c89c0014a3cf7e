// Package unit converts between byte counts and human-entered or
// human-readable size strings. Disk media is sold in decimal units, so
// multipliers are powers of 1000, not 1024.
package unit

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// KB is one kilobyte (decimal).
	KB int64 = 1000
	// MB is one megabyte.
	MB = KB * 1000
	// GB is one gigabyte.
	GB = MB * 1000
	// TB is one terabyte.
	TB = GB * 1000
)

// ParseSize parses a size string into bytes. The string is a number
// immediately followed by an optional single-letter unit: b, k, m, g or
// t (case-insensitive). No unit means a raw byte count. Any other
// trailing content is an error.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	multiplier := int64(1)
	numStr := s

	last := strings.ToUpper(s[len(s)-1:])
	switch last {
	case "B":
		numStr = s[:len(s)-1]
	case "K":
		multiplier = KB
		numStr = s[:len(s)-1]
	case "M":
		multiplier = MB
		numStr = s[:len(s)-1]
	case "G":
		multiplier = GB
		numStr = s[:len(s)-1]
	case "T":
		multiplier = TB
		numStr = s[:len(s)-1]
	default:
		// No suffix, parse as a plain number.
	}

	if numStr == "" {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	// Try integer first, then float.
	if n, err := strconv.ParseInt(numStr, 10, 64); err == nil {
		return n * multiplier, nil
	}

	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	return int64(f * float64(multiplier)), nil
}

// FormatSize renders a byte count using the largest unit whose magnitude
// is at least one. Non-byte units get exactly two decimals ("1.50K");
// plain bytes get none ("512B").
func FormatSize(n int64) string {
	v := float64(n)
	switch {
	case v >= float64(TB):
		return fmt.Sprintf("%.2fT", v/float64(TB))
	case v >= float64(GB):
		return fmt.Sprintf("%.2fG", v/float64(GB))
	case v >= float64(MB):
		return fmt.Sprintf("%.2fM", v/float64(MB))
	case v >= float64(KB):
		return fmt.Sprintf("%.2fK", v/float64(KB))
	default:
		return fmt.Sprintf("%.0fB", v)
	}
}
