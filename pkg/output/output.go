// Package output resolves dated artifact paths and archives superseded
// artifacts before they are overwritten.
//
// Each run targets a date-stamped filename in the output directory. When the
// target already exists, the old artifact is first copied into an archive/
// subdirectory with a timestamp prefix, so reruns on the same day never lose
// a previously delivered document.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mkuehn/vitae/pkg/errors"
)

// ArchiveDirName is the subdirectory of the output directory that holds
// superseded artifacts.
const ArchiveDirName = "archive"

// DatedName returns the artifact filename for a given day, e.g.
// "cv_20260830.pdf".
func DatedName(base string, t time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, t.Format("20060102"), ext)
}

// Resolve returns the full target path for a run.
func Resolve(dir, base string, t time.Time, ext string) string {
	return filepath.Join(dir, DatedName(base, t, ext))
}

// ArchiveExisting copies the artifact at path into the archive subdirectory
// next to it, prefixed with a second-resolution timestamp. It returns the
// archive path, or "" if there was nothing to archive.
func ArchiveExisting(path string, t time.Time) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}

	archiveDir := filepath.Join(filepath.Dir(path), ArchiveDirName)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", archiveDir)
	}

	name := t.Format("20060102-150405") + "_" + filepath.Base(path)
	dst := filepath.Join(archiveDir, name)
	if err := copyFile(path, dst); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "archive %s", path)
	}
	return dst, nil
}

// WriteArtifact writes data to path, archiving any existing artifact there
// first unless archiving is disabled. It returns the archive path if one was
// made.
func WriteArtifact(path string, data []byte, t time.Time, archive bool) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
	}

	archived := ""
	if archive {
		var err error
		archived, err = ArchiveExisting(path, t)
		if err != nil {
			return "", err
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return archived, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return archived, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
