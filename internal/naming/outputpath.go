package naming

import (
	"fmt"
	"path/filepath"
	"time"
)

// CategoryDir returns the type-mode destination directory:
//
//	<root>/<Category>
func CategoryDir(root, category string) string {
	return filepath.Join(root, category)
}

// DateDir returns the date-mode destination directory for a file last
// modified at mod, using the file's own timestamp in local time:
//
//	<root>/<Year>/<MonthName>    e.g. root/2023/November
func DateDir(root string, mod time.Time) string {
	mod = mod.Local()
	return filepath.Join(root, fmt.Sprintf("%04d", mod.Year()), mod.Month().String())
}
