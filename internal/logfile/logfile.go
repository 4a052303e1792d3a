// Package logfile appends informational lines to a plain-text run log.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Name is the file name of the run log inside the scanned directory.
const Name = "duplicate_files.log"

// Path returns the run log path for dir.
func Path(dir string) string {
	return filepath.Join(dir, Name)
}

// Logger appends lines to a single file. The file is opened and closed for
// every line, so nothing is held open between writes.
type Logger struct {
	fs   afero.Fs
	path string
}

// New creates a Logger appending to path on fsys.
func New(fsys afero.Fs, path string) *Logger {
	return &Logger{fs: fsys, path: path}
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	return l.path
}

// Println appends line followed by a newline.
func (l *Logger) Println(line string) error {
	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %q: %w", l.path, err)
	}

	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()

		return fmt.Errorf("writing log file %q: %w", l.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing log file %q: %w", l.path, err)
	}

	return nil
}
