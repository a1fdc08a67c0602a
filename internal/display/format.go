package display

import (
	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (B, KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatCount returns n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
