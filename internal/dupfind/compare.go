package dupfind

import (
	"bytes"
	"errors"
	"io"

	"github.com/spf13/afero"
)

// Comparator reports whether two files hold the same bytes.
//
// Every call streams both files in full when they match, so a resolution
// pass over n files costs up to n²/2 full reads.
type Comparator struct {
	fs        afero.Fs
	chunkSize int
}

// NewComparator creates a Comparator reading from fsys in chunks of chunkSize bytes.
func NewComparator(fsys afero.Fs, chunkSize int) Comparator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return Comparator{fs: fsys, chunkSize: chunkSize}
}

// Equal returns true if a and b have identical length and content.
// A file that cannot be opened or read is never equal to anything.
func (c Comparator) Equal(a, b string) bool {
	fa, err := c.fs.Open(a)
	if err != nil {
		return false
	}
	defer fa.Close()

	fb, err := c.fs.Open(b)
	if err != nil {
		return false
	}
	defer fb.Close()

	bufA := make([]byte, c.chunkSize)
	bufB := make([]byte, c.chunkSize)

	for {
		nA, errA := io.ReadFull(fa, bufA)
		nB, errB := io.ReadFull(fb, bufB)

		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false
		}

		endA, endB := isEnd(errA), isEnd(errB)

		if (errA != nil && !endA) || (errB != nil && !endB) {
			return false
		}

		if endA || endB {
			return endA && endB
		}
	}
}

// isEnd reports whether err marks the end of the stream.
func isEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
