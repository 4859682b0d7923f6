package dbu

import (
	"context"
	"os"
	"path"
	"path/filepath"
)

// RunState is a terminal pipeline state.
type RunState string

const (
	StateSelectFailed    RunState = "select-failed"
	StateNoMatches       RunState = "no-matches"
	StateArchiveFailed   RunState = "archive-failed"
	StateUploadFailed    RunState = "upload-failed"
	StateUploadSucceeded RunState = "upload-succeeded"
)

// RunResult describes how a run ended, for callers that need more than an
// exit code.
type RunResult struct {
	State       RunState
	Selected    int
	ArchivePath string
	Bucket      string
	Key         string
}

// ServiceOptions carries the per-run settings that are not dependencies.
type ServiceOptions struct {
	SourceDir      string
	Bucket         string
	FileDateFormat string
	PathDateFormat string
}

// Service drives the select → archive → upload pipeline. One invocation,
// one attempt per step; the first failure ends the run. Nothing persists
// between runs.
type Service struct {
	selector  *Selector
	archiver  *Archiver
	store     ObjectStore
	encryptor Encryptor
	opts      ServiceOptions
	logger    Logger
	clock     Clock
}

// NewService creates a Service with the provided dependencies.
func NewService(selector *Selector, archiver *Archiver, store ObjectStore, encryptor Encryptor, opts ServiceOptions, logger Logger, clock Clock) *Service {
	return &Service{
		selector:  selector,
		archiver:  archiver,
		store:     store,
		encryptor: encryptor,
		opts:      opts,
		logger:    logger,
		clock:     clock,
	}
}

// stamp renders today once. Every later step works off this value, so the
// filename token and the path token always agree on the day.
func (s *Service) stamp() DateStamp {
	return NewDateStamp(s.clock.Now(), s.opts.FileDateFormat, s.opts.PathDateFormat)
}

// Plan runs only the selection step and reports what a run would ship. It
// touches neither the destination root nor the network.
func (s *Service) Plan() (DateStamp, []CandidateFile, error) {
	stamp := s.stamp()
	files, err := s.selector.Select(s.opts.SourceDir, stamp)
	return stamp, files, err
}

// Run executes the pipeline once and returns the terminal result. The
// returned error is ErrNoMatches or one of the types in errors.go; the
// result's State field is always set.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	stamp := s.stamp()
	res := &RunResult{Bucket: s.opts.Bucket}

	files, err := s.selector.Select(s.opts.SourceDir, stamp)
	if err != nil {
		res.State = StateSelectFailed
		s.logger.Error("selection failed", "dir", s.opts.SourceDir, "error", err)
		return res, err
	}
	if len(files) == 0 {
		res.State = StateNoMatches
		s.logger.Info("no files for today", "dir", s.opts.SourceDir, "token", stamp.FileToken)
		return res, ErrNoMatches
	}
	res.Selected = len(files)
	s.logger.Info("files selected", "count", len(files), "token", stamp.FileToken)

	archivePath, err := s.archiver.Archive(files, stamp)
	if err != nil {
		res.State = StateArchiveFailed
		s.logger.Error("archive step failed", "error", err)
		return res, err
	}
	res.ArchivePath = archivePath

	shipPath, err := s.encryptor.Seal(archivePath)
	if err != nil {
		res.State = StateArchiveFailed
		s.logger.Error("sealing archive failed", "path", archivePath, "error", err)
		return res, &ArchiveError{Path: archivePath, Err: err}
	}

	key := path.Join(stamp.PathToken, filepath.Base(shipPath))
	res.Key = key

	if err := s.upload(ctx, shipPath, key); err != nil {
		res.State = StateUploadFailed
		s.logger.Error("upload failed", "bucket", s.opts.Bucket, "key", key, "error", err)
		return res, err
	}

	res.State = StateUploadSucceeded
	s.logger.Info("upload complete", "bucket", s.opts.Bucket, "key", key)
	return res, nil
}

// upload streams the archive to the store. A vanished archive is reported
// before any store call is made.
func (s *Service) upload(ctx context.Context, archivePath, key string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return &ArchiveMissingError{Path: archivePath, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &ArchiveMissingError{Path: archivePath, Err: err}
	}

	return s.store.Put(ctx, key, f, info.Size())
}
