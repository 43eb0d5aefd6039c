// Package cache removes stale files left in the cache directory.
package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/iridum-cli/iridum/filesystem"
	"github.com/iridum-cli/iridum/log"
	"github.com/iridum-cli/iridum/where"
)

const TTL = 7 * 24 * time.Hour

// Sweep deletes regular files under dir that were not modified within maxAge.
func Sweep(dir string, maxAge time.Duration, now time.Time) (int, error) {
	var removed int

	err := filesystem.API().Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || now.Sub(info.ModTime()) <= maxAge {
			return nil
		}
		if err := filesystem.API().Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})

	return removed, err
}

// CollectGarbage sweeps the application cache directory.
func CollectGarbage() {
	dir := where.Cache()
	removed, err := Sweep(dir, TTL, time.Now())
	if err != nil {
		log.Warnf("cache sweep of %s: %v", filepath.Base(dir), err)
		return
	}
	if removed > 0 {
		log.Debugf("removed %d stale cache files", removed)
	}
}
