// Command dupfind reports and optionally deletes files with identical content.
package main

import (
	"os"

	"github.com/idelchi/dupfind/internal/cli"
)

// version is set at build time.
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}
