package preview

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	invoiceprint "github.com/lajutuju/go-invoiceprint"
)

// ErrOrderNotFound is returned when no order file matches an id.
var ErrOrderNotFound = errors.New("order not found")

// orderExtensions are tried in order when resolving an id to a file.
var orderExtensions = []string{".yaml", ".yml", ".json"}

// OrderStore looks up orders by id.
type OrderStore interface {
	Get(id string) (*invoiceprint.Order, error)
	List() ([]string, error)
}

// DirStore reads orders from a directory holding one YAML or JSON file per
// order, named after the order id.
type DirStore struct {
	dir string
}

var _ OrderStore = (*DirStore)(nil)

// NewDirStore creates a store over dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Get loads the order stored as <id>.yaml, <id>.yml or <id>.json.
func (s *DirStore) Get(id string) (*invoiceprint.Order, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrOrderNotFound, id)
	}
	for _, ext := range orderExtensions {
		path := filepath.Join(s.dir, id+ext)
		order, err := invoiceprint.LoadOrder(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return order, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrOrderNotFound, id)
}

// List returns the ids of all order files, sorted.
func (s *DirStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(orderExtensions, ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// validID rejects ids that could escape the store directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." &&
		!strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
