package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// SweepTemp deletes scratch entries older than maxAge and returns how many
// were removed. Orphaned per-job directories left behind by a crashed run are
// removed the same way as plain files.
func SweepTemp(tempDir string, maxAge time.Duration) (int, error) {
	return sweep(tempDir, maxAge, func(entry os.DirEntry) bool { return true })
}

// SweepFrames deletes per-job frame directories older than maxAge.
func SweepFrames(framesDir string, maxAge time.Duration) (int, error) {
	return sweep(framesDir, maxAge, func(entry os.DirEntry) bool { return entry.IsDir() })
}

func sweep(dir string, maxAge time.Duration, keep func(os.DirEntry) bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	deleted := 0
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !keep(entry) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			log.Printf("failed to delete %s: %v", path, err)
			continue
		}
		log.Printf("deleted expired entry: %s", path)
		deleted++
	}
	return deleted, nil
}
