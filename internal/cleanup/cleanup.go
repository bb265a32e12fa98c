// Package cleanup prunes stale files the application leaves behind, such as old daily logs.
package cleanup

import (
	"os"
	"time"

	"github.com/mprisync/mprisync/filesystem"
	"github.com/mprisync/mprisync/log"
)

// LogsTTL is how long daily log files are kept.
const LogsTTL = 7 * 24 * time.Hour

// CollectGarbage removes the files under dir last modified more than ttl ago and returns how many
// were removed. A missing dir is not an error.
func CollectGarbage(dir string, ttl time.Duration) (int, error) {
	fs := filesystem.API()

	exists, err := fs.DirExists(dir)
	if err != nil || !exists {
		return 0, err
	}

	var removed int
	err = fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) <= ttl {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			log.Debugf("cleanup: remove %s: %v", path, err)
			return nil
		}
		removed++
		return nil
	})

	return removed, err
}
