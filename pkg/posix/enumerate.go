//go:build linux

package posix

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/clayne/physfs/pkg/platform"
)

// Enumerate lists the entries of dir, invoking fn once per entry. The "."
// and ".." pseudo-entries never appear; with omitSymlinks set, symbolic
// links are skipped too.
func (p *Platform) Enumerate(dir string, omitSymlinks bool, fn platform.EnumerateFunc, origDir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("posix: enumerate %s: %w", dir, classify(err))
	}
	for _, e := range entries {
		if omitSymlinks && e.Type()&fs.ModeSymlink != 0 {
			continue
		}
		fn(origDir, e.Name())
	}
	return nil
}
