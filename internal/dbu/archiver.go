package dbu

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/flate"
)

// ArchiveExt is appended to the dated directory name to form the archive
// path. The archive is a sibling of the directory, never inside it, so a
// re-run cannot capture a previous archive.
const ArchiveExt = ".zip"

// Archiver copies selected files into a dated directory under destRoot and
// compresses that directory into a sibling zip archive.
type Archiver struct {
	destRoot string
	logger   Logger
}

// NewArchiver creates an Archiver writing under destRoot.
func NewArchiver(destRoot string, logger Logger) *Archiver {
	return &Archiver{destRoot: destRoot, logger: logger}
}

// Archive copies each file into destRoot/<PathToken>, preserving
// modification times, then zips the whole directory and returns the
// archive's absolute path.
//
// Re-running on the same day merges into the existing dated directory:
// files already present are kept, same-named files are overwritten, and a
// warning names the directory. The first copy failure aborts the run with
// a CopyError; files copied before it remain on disk.
func (a *Archiver) Archive(files []CandidateFile, stamp DateStamp) (string, error) {
	backupDir := filepath.Join(a.destRoot, stamp.PathToken)
	if info, err := os.Stat(backupDir); err == nil && info.IsDir() {
		a.logger.Warn("dated directory already exists, merging into it", "dir", backupDir)
	}
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", &ArchiveError{Path: backupDir, Err: err}
	}

	for _, f := range files {
		dest := filepath.Join(backupDir, f.Name)
		if err := copyFile(f.Path(), dest); err != nil {
			return "", &CopyError{File: f.Path(), Err: err}
		}
		a.logger.Info("file copied", "name", f.Name, "dest", dest)
	}

	archivePath := backupDir + ArchiveExt
	if err := zipDirectory(backupDir, archivePath); err != nil {
		return "", &ArchiveError{Path: archivePath, Err: err}
	}

	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return "", &ArchiveError{Path: archivePath, Err: err}
	}

	a.logger.Info("archive created", "path", abs)
	return abs, nil
}

// copyFile copies src to dest and carries the source's modification time
// over to the copy.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}

// zipDirectory compresses every regular file directly under dir into a zip
// archive at archivePath. Entries are written in sorted name order so the
// same directory always produces the same archive layout.
func zipDirectory(dir, archivePath string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	for _, name := range names {
		if err := addZipEntry(zw, dir, name); err != nil {
			zw.Close()
			out.Close()
			return fmt.Errorf("adding %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// addZipEntry writes one file from dir into the archive under its bare name.
func addZipEntry(zw *zip.Writer, dir, name string) error {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
