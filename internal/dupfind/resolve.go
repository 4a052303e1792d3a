package dupfind

import (
	"fmt"

	"github.com/spf13/afero"
)

// Member is one file of a duplicate group.
type Member struct {
	// Index is the registry index of the file.
	Index int
	// Path is the file path.
	Path string
	// Deleted is true once the file was removed from disk.
	Deleted bool
	// Err holds the deletion failure, if any.
	Err error
}

// Group is a set of files with identical content.
type Group struct {
	// Kept is the lowest-indexed member, never deleted.
	Kept Member
	// Redundant holds the other members in index order.
	Redundant []Member
}

// Resolution is the outcome of grouping an inventory.
type Resolution struct {
	// Groups lists the duplicate groups in order of their kept member.
	Groups []Group
	// PathBytesBefore is the summed path length of every record.
	PathBytesBefore int64
	// PathBytesAfter is the summed path length of the records not marked redundant.
	PathBytesAfter int64
	// Deleted is the number of files removed from disk.
	Deleted int
	// DeleteErrors is the number of files that could not be removed.
	DeleteErrors int
}

// Redundant returns the number of files marked redundant.
func (r *Resolution) Redundant() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Redundant)
	}

	return n
}

// Resolve groups the inventory records by content, comparing every unmarked
// pair in registration order. The first member of a group is kept; every other
// member is marked redundant and, if opt.Delete is set, removed through fsys.
//
// No size or hash bucketing happens first, so resolution performs O(n²)
// comparisons. Deletion failures are reported to opt.Diagnostics and do not
// stop the pass.
func Resolve(fsys afero.Fs, inv *Inventory, opt Options) *Resolution {
	opt = opt.withDefaults()

	log := logger{enabled: opt.Debug}
	cmp := NewComparator(fsys, opt.ChunkSize)
	records := inv.Records

	res := &Resolution{}
	marked := make([]bool, len(records))
	redundant := make([]bool, len(records))

	for i := range records {
		if marked[i] {
			continue
		}

		var group *Group

		for j := i + 1; j < len(records); j++ {
			if marked[j] || !cmp.Equal(records[i].Path, records[j].Path) {
				continue
			}

			if group == nil {
				marked[i] = true
				group = &Group{Kept: Member{Index: i, Path: records[i].Path}}

				log.printf("[debug]: keeping %s\n", records[i].Path)
			}

			marked[j] = true
			redundant[j] = true
			member := Member{Index: j, Path: records[j].Path}

			if opt.Delete {
				if err := fsys.Remove(records[j].Path); err != nil {
					fmt.Fprintf(opt.Diagnostics, "error deleting file %s: %v\n", records[j].Path, err)

					member.Err = err
					res.DeleteErrors++
				} else {
					log.printf("[debug]: deleted %s\n", records[j].Path)

					member.Deleted = true
					res.Deleted++
				}
			}

			group.Redundant = append(group.Redundant, member)
		}

		if group != nil {
			res.Groups = append(res.Groups, *group)
		}
	}

	for i, record := range records {
		size := int64(len(record.Path))

		res.PathBytesBefore += size
		if !redundant[i] {
			res.PathBytesAfter += size
		}
	}

	return res
}
