package cli

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// DebugEnv enables debug output when set to a non-empty value.
const DebugEnv = "DUPFIND_DEBUG"

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().ExecuteContext(context.Background())
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options dupfind.Options

	cmd := &cobra.Command{
		Use:   "dupfind [-d] [-r] <directory>",
		Short: "Find files with identical content",
		Long: heredoc.Doc(`
			dupfind scans a directory for files with byte-identical content.

			Files are compared byte for byte, never by hash. Within each group of
			identical files the first one discovered is kept. With -d every other
			member of the group is deleted.

			The number of files per extension (.txt, .jpg, .pdf, .py, others) is
			reported at the end, and a short log is appended to
			<directory>/duplicate_files.log.

			Set DUPFIND_DEBUG=1 for debug output.
		`),
		Example: heredoc.Doc(`
			dupfind ./photos
			dupfind -r -d ~/Downloads
		`),
		Args:    cobra.ExactArgs(1),
		Version: c.version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid; later failures are not usage errors.
			cmd.SilenceUsage = true

			options.Path = args[0]
			options.Debug = os.Getenv(DebugEnv) != ""

			return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&options.Delete, "delete", "d", false, "Delete duplicates and keep one instance")
	cmd.Flags().BoolVarP(&options.Recurse, "recursive", "r", false, "Recursively search subdirectories")
	cmd.Flags().SortFlags = false

	return cmd
}
