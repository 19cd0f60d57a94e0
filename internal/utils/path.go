package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver locates data directories relative to the running binary so
// the same invocation works from a build tree and an installed location.
type PathResolver struct {
	executableDir string
}

// NewPathResolver creates a resolver anchored at the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s", execPath, pr.executableDir)
	return pr, nil
}

// GetDataDir resolves the directory containing binary chunk files.
// Candidates are tried in order of preference:
// 1. The user-specified path, when absolute
// 2. Relative to the executable directory
// 3. Relative to the current working directory
// 4. A "data" directory next to or above the executable
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) (string, error) {
	var candidatePaths []string

	if filepath.IsAbs(userSpecifiedPath) {
		candidatePaths = append(candidatePaths, userSpecifiedPath)
	}

	execRelativePath := filepath.Join(pr.executableDir, userSpecifiedPath)
	candidatePaths = append(candidatePaths, execRelativePath)

	if cwd, err := os.Getwd(); err == nil {
		candidatePaths = append(candidatePaths, filepath.Join(cwd, userSpecifiedPath))
	}

	candidatePaths = append(candidatePaths,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
	)

	for _, path := range candidatePaths {
		if pr.isValidDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path, nil
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}

	// Nothing found; return the most likely path for error reporting
	return execRelativePath, nil
}

// isValidDataDir checks if a directory contains at least one chunk file
func (pr *PathResolver) isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}

	matches, err := filepath.Glob(filepath.Join(path, "words_*.bin"))
	if err != nil {
		return false
	}
	return len(matches) > 0
}
