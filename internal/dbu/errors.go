package dbu

import (
	"errors"
	"fmt"
)

// ErrNoMatches reports that the source directory was readable but held no
// files for today. It ends the run but is not a failure of any component;
// the CLI maps it to a distinct skip exit code.
var ErrNoMatches = errors.New("no files match today's date")

// SourceUnreadableError reports that the source directory could not be
// listed at all (missing, permission denied). Distinct from a readable
// directory with no matches, which is not an error.
type SourceUnreadableError struct {
	Dir string
	Err error
}

func (e *SourceUnreadableError) Error() string {
	return fmt.Sprintf("source directory unreadable: %s: %v", e.Dir, e.Err)
}

func (e *SourceUnreadableError) Unwrap() error { return e.Err }

// CopyError reports the first file that failed to copy into the dated
// directory. Files copied before the failure remain on disk.
type CopyError struct {
	File string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s: %v", e.File, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// ArchiveError reports a failure while creating the dated directory or
// compressing it into the archive.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("creating archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// ArchiveMissingError reports that the archive vanished between creation
// and upload. No store call is made when this is returned.
type ArchiveMissingError struct {
	Path string
	Err  error
}

func (e *ArchiveMissingError) Error() string {
	return fmt.Sprintf("archive not found: %s", e.Path)
}

func (e *ArchiveMissingError) Unwrap() error { return e.Err }

// AuthError reports absent or rejected object store credentials.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("object store authentication: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransferError reports a network or service failure during an object
// store operation, partial uploads included.
type TransferError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transferring %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
