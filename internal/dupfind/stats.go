package dupfind

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultWorkers bounds the number of in-flight registration tasks.
	DefaultWorkers = 16
	// DefaultChunkSize is the read size used when comparing file contents.
	DefaultChunkSize = 1024
)

// Category is an extension bucket of the tally.
type Category int

// Extension buckets, in display order.
const (
	CategoryTxt Category = iota
	CategoryJpg
	CategoryPdf
	CategoryPy
	CategoryOther

	numCategories
)

// Categories lists every bucket in display order.
//
//nolint:gochecknoglobals // Fixed category order
var Categories = [numCategories]Category{CategoryTxt, CategoryJpg, CategoryPdf, CategoryPy, CategoryOther}

// String returns the suffix matched by the category, or "Others".
func (c Category) String() string {
	switch c {
	case CategoryTxt:
		return ".txt"
	case CategoryJpg:
		return ".jpg"
	case CategoryPdf:
		return ".pdf"
	case CategoryPy:
		return ".py"
	default:
		return "Others"
	}
}

// Classify maps a file name to its category by exact, case-sensitive match
// of the suffix starting at the last dot.
func Classify(name string) Category {
	switch filepath.Ext(name) {
	case ".txt":
		return CategoryTxt
	case ".jpg":
		return CategoryJpg
	case ".pdf":
		return CategoryPdf
	case ".py":
		return CategoryPy
	default:
		return CategoryOther
	}
}

// Tally counts discovered files per category.
type Tally [numCategories]int

// Count returns the number of files in the category.
func (t Tally) Count(c Category) int {
	if c < 0 || c >= numCategories {
		return 0
	}

	return t[c]
}

// Total returns the sum over all categories.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}

	return total
}

// FileRecord is a discovered regular file. Its identity is its index in the registry.
type FileRecord struct {
	// Path is the directory being walked joined with the entry name.
	Path string
}

// Inventory is the frozen result of a walk.
type Inventory struct {
	// Records holds every registered file in registration order.
	Records []FileRecord
	// Tally holds the per-extension counts.
	Tally Tally
	// PathBytes is the summed byte length of all record paths.
	PathBytes int64
	// ErrorCount is the number of entries or directories that could not be read.
	ErrorCount int64
	// Elapsed is the time spent walking.
	Elapsed time.Duration
}

// Options configures a scan and its resolution.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Recurse descends into subdirectories.
	Recurse bool
	// Delete removes redundant duplicates from disk.
	Delete bool
	// Workers is the maximum number of concurrent registration tasks.
	Workers int
	// ChunkSize is the read size for content comparison.
	ChunkSize int
	// LogPath names the run log, which is never registered.
	LogPath string
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Diagnostics receives per-entry and deletion error messages. Defaults to stderr.
	Diagnostics io.Writer
}

// withDefaults fills in zero values.
func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = "."
	}

	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}

	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}

	if o.Diagnostics == nil {
		o.Diagnostics = os.Stderr
	}

	return o
}
