package dbu

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is the backup file extension matched when none is configured.
const DefaultSuffix = ".bak"

// CandidateFile is one backup file picked up by the Selector.
type CandidateFile struct {
	Name string
	Dir  string
}

// Path returns the file's full path.
func (c CandidateFile) Path() string { return filepath.Join(c.Dir, c.Name) }

// Selector filters a source directory down to the files belonging to a
// single day's backup run.
type Selector struct {
	suffix string
	logger Logger
}

// NewSelector creates a Selector matching the given suffix, or
// DefaultSuffix when empty.
func NewSelector(suffix string, logger Logger) *Selector {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Selector{suffix: suffix, logger: logger}
}

// Select returns the files in dir whose name ends with the configured
// suffix and contains the stamp's file token anywhere in the name, in
// directory-listing order. Subdirectories are skipped, never descended
// into. A readable directory with no matches yields an empty result and
// no error; a missing or unreadable directory is a SourceUnreadableError.
func (s *Selector) Select(dir string, stamp DateStamp) ([]CandidateFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &SourceUnreadableError{Dir: dir, Err: err}
	}

	var files []CandidateFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, s.suffix) {
			continue
		}
		if !strings.Contains(name, stamp.FileToken) {
			continue
		}
		files = append(files, CandidateFile{Name: name, Dir: dir})
	}

	s.logger.Debug("source scanned", "dir", dir, "token", stamp.FileToken, "matches", len(files))
	return files, nil
}
