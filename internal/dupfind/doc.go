// Package dupfind finds files with byte-identical content.
//
// It walks a directory tree, registering regular files from a bounded
// pool of goroutines, tallies them by extension, and then groups files
// whose contents match byte for byte, optionally deleting every member
// of a group except the first one discovered.
package dupfind
