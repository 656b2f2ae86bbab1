package xmldoc

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/notatez/notatez/pkg/metrics"
)

// Store owns a single XML document on disk. It keeps no document state
// between calls: every read loads the full file and every write truncates
// and rewrites it. Mutations run under a per-store mutex so that the
// load-mutate-save cycle is single-writer within the process; a size+mtime
// check additionally rejects saves when the file changed underneath the lock
// (another process wrote it), with ErrConflict.
type Store struct {
	path string
	root string
	mu   sync.Mutex
}

// NewStore creates a store for the named collection. The document lives at
// dir/<lowercase root>.xml, e.g. Accounts -> dir/accounts.xml.
func NewStore(dir, root string) *Store {
	return &Store{
		path: filepath.Join(dir, strings.ToLower(root)+".xml"),
		root: root,
	}
}

// Path returns the on-disk location of the document.
func (s *Store) Path() string { return s.path }

// fileState is a size+mtime snapshot used to detect external writers.
// Writes of identical size within the filesystem's mtime granularity can
// still pass undetected.
type fileState struct {
	size    int64
	modTime time.Time
}

func (f fileState) equal(o fileState) bool {
	return f.size == o.size && f.modTime.Equal(o.modTime)
}

// Load reads the full document. When the file is absent an empty document
// with just the root element is written to disk and returned.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	doc, _, err := s.load(ctx)
	return doc, err
}

func (s *Store) load(ctx context.Context) (*Document, fileState, error) {
	if err := ctx.Err(); err != nil {
		return nil, fileState{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	start := time.Now()
	metrics.StoreOps.WithLabelValues(s.root, "load").Inc()
	defer func() {
		metrics.StoreDuration.WithLabelValues(s.root, "load").Observe(time.Since(start).Seconds())
	}()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := NewDocument(s.root)
		if err := s.write(doc); err != nil {
			metrics.StoreFailures.WithLabelValues(s.root, "load").Inc()
			return nil, fileState{}, err
		}
		return doc, s.state(), nil
	}
	if err != nil {
		metrics.StoreFailures.WithLabelValues(s.root, "load").Inc()
		return nil, fileState{}, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, s.path, err)
	}

	root := &Element{}
	if err := xml.Unmarshal(data, root); err != nil {
		metrics.StoreFailures.WithLabelValues(s.root, "load").Inc()
		return nil, fileState{}, fmt.Errorf("%w: parse %s: %v", ErrStorageUnavailable, s.path, err)
	}

	doc := &Document{Root: root.Name}
	last, err := root.Int(lastIDName)
	if err != nil {
		metrics.StoreFailures.WithLabelValues(s.root, "load").Inc()
		return nil, fileState{}, err
	}
	doc.LastID = last
	for _, c := range root.Children {
		if c.Name != lastIDName {
			doc.Items = append(doc.Items, c)
		}
	}
	return doc, s.state(), nil
}

// Save truncates the file and rewrites the full document.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	start := time.Now()
	metrics.StoreOps.WithLabelValues(s.root, "save").Inc()
	defer func() {
		metrics.StoreDuration.WithLabelValues(s.root, "save").Observe(time.Since(start).Seconds())
	}()

	if err := s.write(doc); err != nil {
		metrics.StoreFailures.WithLabelValues(s.root, "save").Inc()
		return err
	}
	return nil
}

func (s *Store) write(doc *Document) error {
	children := doc.Items
	if doc.LastID > 0 {
		children = append([]*Element{NewElement(lastIDName, strconv.Itoa(doc.LastID))}, doc.Items...)
	}
	root := &Element{Name: doc.Root, Children: children}
	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorageUnavailable, s.path, err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, s.path, err)
	}
	if _, err := f.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, s.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return nil
}

func (s *Store) state() fileState {
	fi, err := os.Stat(s.path)
	if err != nil {
		return fileState{}
	}
	return fileState{size: fi.Size(), modTime: fi.ModTime()}
}

// Mutate runs fn over a freshly loaded document and saves the result, all
// under the store mutex. When fn returns an error nothing is written. A file
// changed underneath the lock by another process is rejected with
// ErrConflict.
func (s *Store) Mutate(ctx context.Context, fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, loaded, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if st := s.state(); !loaded.modTime.IsZero() && !st.equal(loaded) {
		metrics.StoreFailures.WithLabelValues(s.root, "save").Inc()
		return fmt.Errorf("%w: %s", ErrConflict, s.path)
	}
	return s.Save(ctx, doc)
}
