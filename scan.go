package pixeldata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// regularFiles returns the paths of the regular files directly inside dir,
// sorted by name. Symbolic links are followed.
func regularFiles(dir string, logger zerolog.Logger) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		file := filepath.Join(dir, entry.Name())

		info, err := os.Stat(file)
		if err != nil {
			// Dangling symbolic link, etc.
			logger.Debug().Err(err).Str("file", file).Msg("Skipping")
			continue
		}

		// Ignore anything that isn't a normal file
		if !info.Mode().IsRegular() {
			logger.Debug().Str("file", file).Str("mode", info.Mode().String()).Msg("Skipping")
			continue
		}

		files = append(files, file)
	}

	return files, nil
}
