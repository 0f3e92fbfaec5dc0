// backend-go/internal/dataset/sample.go
package dataset

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Bundled sample file names under the configured data directory.
const (
	SampleWarehouseFile = "warehouse_inventory.csv"
	SampleOrdersFile    = "orders.csv"
)

// SampleLoader loads the bundled demo datasets with an explicit cache keyed
// by path and content digest. A changed file is re-read on the next load;
// Invalidate drops everything eagerly.
type SampleLoader struct {
	dir string

	mu    sync.Mutex
	cache map[string]sampleEntry
}

type sampleEntry struct {
	digest string
	table  *Table
}

func NewSampleLoader(dir string) *SampleLoader {
	return &SampleLoader{
		dir:   dir,
		cache: make(map[string]sampleEntry),
	}
}

// LoadSampleData returns the bundled warehouse and orders tables.
func (l *SampleLoader) LoadSampleData() (warehouse, orders *Table, err error) {
	warehouse, err = l.load(filepath.Join(l.dir, SampleWarehouseFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load sample warehouse data: %w", err)
	}
	orders, err = l.load(filepath.Join(l.dir, SampleOrdersFile))
	if err != nil {
		return nil, nil, fmt.Errorf("load sample orders data: %w", err)
	}
	return warehouse, orders, nil
}

// Invalidate drops all cached tables.
func (l *SampleLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]sampleEntry)
}

func (l *SampleLoader) load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha1.Sum(raw)
	digest := hex.EncodeToString(sum[:])

	l.mu.Lock()
	defer l.mu.Unlock()
	if entry, ok := l.cache[path]; ok && entry.digest == digest {
		return entry.table, nil
	}

	t, err := FromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	l.cache[path] = sampleEntry{digest: digest, table: t}
	return t, nil
}
