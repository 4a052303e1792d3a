package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/idelchi/dupfind/internal/dupfind"
	"github.com/idelchi/dupfind/internal/logfile"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// writeLog appends line to the run log, reporting failures to errOut.
func writeLog(log *logfile.Logger, errOut io.Writer, line string) {
	if err := log.Println(line); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
}

func logic(ctx context.Context, options dupfind.Options, out, errOut io.Writer) error {
	fsys := afero.NewOsFs()

	options.LogPath = logfile.Path(options.Path)
	options.Diagnostics = errOut

	log := logfile.New(fsys, options.LogPath)

	writeLog(log, errOut, "Duplicate Files Log")
	writeLog(log, errOut, "-------------------")
	writeLog(log, errOut, "Starting duplicate file search...")

	enableProgress := !options.Debug && isTerminal(errOut)

	// Simple progress callback that prints directly to the error stream
	var progressHook func(files, pathBytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(errOut, "\033[?25l")
		defer fmt.Fprint(errOut, "\033[?25h")

		progressHook = func(files, _ int64) {
			fmt.Fprintf(errOut, "\r\033[2KScanning… %s files\r", humanize.Comma(files))
		}
	}

	inventory, err := dupfind.Scan(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(errOut, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	writeLog(log, errOut, "Duplicate file search completed.")

	resolution := dupfind.Resolve(fsys, inventory, options)

	return PrintSummary(inventory, resolution, options.Delete, out)
}
