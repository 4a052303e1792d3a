package dupfind

import (
	"slices"
	"sync"
)

// Registry collects discovered files from concurrent registration tasks using a mutex.
type Registry struct {
	mu        sync.Mutex // Protect concurrent access
	growBy    int
	records   []FileRecord
	tally     Tally
	pathBytes int64
	errors    int64
	frozen    bool
}

// NewRegistry creates an empty registry whose storage grows growBy records at a time.
func NewRegistry(growBy int) *Registry {
	if growBy <= 0 {
		growBy = DefaultWorkers
	}

	return &Registry{
		growBy:  growBy,
		records: make([]FileRecord, 0, growBy),
	}
}

// Register classifies path, bumps its tally bucket and appends it.
// It returns the index of the new record.
func (r *Registry) Register(path string) (int, error) {
	category := Classify(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return -1, ErrRegistryFrozen
	}

	if len(r.records) == cap(r.records) {
		grown := make([]FileRecord, len(r.records), len(r.records)+r.growBy)
		copy(grown, r.records)
		r.records = grown
	}

	r.records = append(r.records, FileRecord{Path: path})
	r.tally[category]++
	r.pathBytes += int64(len(path))

	return len(r.records) - 1, nil
}

// addError increments the error counter.
func (r *Registry) addError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors++
}

// progress returns the current record count and path byte total.
func (r *Registry) progress() (int64, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.records)), r.pathBytes
}

// Len returns the number of registered files.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

// Cap returns the capacity of the record storage.
func (r *Registry) Cap() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cap(r.records)
}

// Freeze stops further registration and produces the Inventory.
// Calling it again returns an equivalent snapshot.
func (r *Registry) Freeze() *Inventory {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true

	return &Inventory{
		Records:    slices.Clone(r.records),
		Tally:      r.tally,
		PathBytes:  r.pathBytes,
		ErrorCount: r.errors,
	}
}
