// Package codebase keeps the documentation comments of a tree of
// JavaScript files parsed and up to date.
package codebase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/closuredoc/config"
	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	cfg     *config.Config
	files   map[string]*FileInfo
}

// FileInfo is the parsed state of one file. It is replaced, never
// modified, when the file changes.
type FileInfo struct {
	Path        string
	Content     []byte
	Docs        []jsdoc.Doc
	Diagnostics []diag.Diagnostic
	Lines       *source.LineIndex
}

// New returns an empty codebase rooted at rootDir. A nil cfg selects
// config.Default().
func New(rootDir string, cfg *config.Config) *Codebase {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Codebase{
		rootDir: rootDir,
		cfg:     cfg,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// IsSource reports whether path names a JavaScript file.
func IsSource(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".mjs", ".cjs":
		return true
	}
	return false
}

// skipDir reports whether a directory is left out of scans.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || name == "node_modules")
}

// Walk returns the JavaScript files below root in lexical order.
func Walk(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// ScanAll parses every JavaScript file below the root directory using up to
// jobs goroutines; jobs <= 0 uses GOMAXPROCS.
func (c *Codebase) ScanAll(ctx context.Context, jobs int) error {
	paths, err := Walk(c.rootDir)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.ScanFile(path)
		})
	}
	return g.Wait()
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and returns the result.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	f := Parse(path, content, c.cfg)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return f
}

// Parse parses the documentation comments of one file.
func Parse(path string, content []byte, cfg *config.Config) *FileInfo {
	text := string(content)
	bag := diag.NewBag(0)
	docs := jsdoc.ParseFile(path, text, diag.BagReporter{Bag: bag}, jsdoc.WithConfig(cfg))
	bag.Sort()
	return &FileInfo{
		Path:        path,
		Content:     content,
		Docs:        docs,
		Diagnostics: bag.Items(),
		Lines:       source.NewLineIndex(text),
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the paths of all known files in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns every diagnostic of the codebase sorted by file and
// position.
func (c *Codebase) Diagnostics() *diag.Bag {
	bag := diag.NewBag(0)
	for _, path := range c.Paths() {
		if f := c.GetFile(path); f != nil {
			for _, d := range f.Diagnostics {
				bag.Add(d)
			}
		}
	}
	return bag
}

// TypeAtPoint returns the type annotation under pos and its span.
func (c *Codebase) TypeAtPoint(path string, pos source.Position) (typeexpr.Type, source.Span, bool) {
	f := c.GetFile(path)
	if f == nil {
		return nil, source.Span{}, false
	}
	return f.TypeAtPoint(pos)
}

func (f *FileInfo) TypeAtPoint(pos source.Position) (typeexpr.Type, source.Span, bool) {
	doc := f.DocAtPoint(pos)
	if doc == nil {
		return nil, source.Span{}, false
	}
	for _, m := range doc.Info.Markers {
		if m.Type != nil && m.Type.Span.Contains(pos) {
			return m.Type.Type, m.Type.Span, true
		}
	}
	if doc.Info.Has(jsdoc.FlagInlineType) {
		return doc.Info.Type, doc.Comment.Span, true
	}
	return nil, source.Span{}, false
}

// DocAtPoint returns the comment that contains pos.
func (f *FileInfo) DocAtPoint(pos source.Position) *jsdoc.Doc {
	i := sort.Search(len(f.Docs), func(i int) bool {
		return pos.Before(f.Docs[i].Comment.Span.End)
	})
	if i < len(f.Docs) && f.Docs[i].Comment.Span.Contains(pos) {
		return &f.Docs[i]
	}
	return nil
}
