package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dupfind/internal/dupfind"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// pathBytes renders a path byte total both exactly and human readable.
func pathBytes(n int64) string {
	return fmt.Sprintf("%s bytes (%s)", humanize.Comma(n), humanize.IBytes(uint64(n))) //nolint:gosec // Sums of lengths are never negative
}

// memberSuffix annotates a redundant member with its deletion outcome.
func memberSuffix(m dupfind.Member, deleting bool) string {
	switch {
	case !deleting:
		return ""
	case m.Deleted:
		return " (deleted)"
	default:
		return " (delete failed)"
	}
}

// PrintSummary outputs the scan totals, the duplicate groups and the extension table.
//
//nolint:forbidigo // This function prints output to the console.
func PrintSummary(inv *dupfind.Inventory, res *dupfind.Resolution, deleting bool, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Total files processed:\t%s\n", humanize.Comma(int64(len(inv.Records))))
	fmt.Fprintf(w, "Total size of paths before removing duplicates:\t%s\n", pathBytes(res.PathBytesBefore))

	// Flush so group paths are not padded to the summary columns
	if err := w.Flush(); err != nil {
		return err
	}

	for _, group := range res.Groups {
		fmt.Fprintln(writer, "\nDuplicate Group:")
		fmt.Fprintf(writer, "  %s\n", group.Kept.Path)

		for _, m := range group.Redundant {
			fmt.Fprintf(writer, "  %s%s\n", m.Path, memberSuffix(m, deleting))
		}
	}

	fmt.Fprintf(w, "\nTotal size of paths after removing duplicates:\t%s\n", pathBytes(res.PathBytesAfter))

	if deleting {
		fmt.Fprintf(w, "Deleted files:\t%d\n", res.Deleted)

		if res.DeleteErrors > 0 {
			fmt.Fprintf(w, "Failed deletions:\t%d\n", res.DeleteErrors)
		}
	}

	fmt.Fprintln(w, "\nNumber of each file type:")

	for _, c := range dupfind.Categories {
		fmt.Fprintf(w, "- %s:\t%d\n", c, inv.Tally.Count(c))
	}

	if inv.ErrorCount > 0 {
		fmt.Fprintf(w, "\nErrors:\t%d\n", inv.ErrorCount)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", inv.Elapsed)

	return w.Flush()
}
