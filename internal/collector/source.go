package collector

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"MarketLens/internal/model"
)

// SourceFile is one named tabular input.
type SourceFile struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Source enumerates the per-symbol input files.
type Source interface {
	Files() ([]SourceFile, error)
	Name() string
}

// DirSource reads every *.csv file in a directory.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Name() string { return s.Dir }

// Files lists the CSV files sorted by name. A missing directory is a
// configuration error.
func (s *DirSource) Files() ([]SourceFile, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: input directory %q not found", model.ErrConfiguration, s.Dir)
		}
		return nil, fmt.Errorf("%w: stat input directory %q: %v", model.ErrConfiguration, s.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: input path %q is not a directory", model.ErrConfiguration, s.Dir)
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var files []SourceFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(s.Dir, e.Name())
		files = append(files, SourceFile{
			Name: e.Name(),
			Open: func() (io.ReadCloser, error) { return os.Open(path) },
		})
	}
	return files, nil
}

// MemorySource serves CSV payloads held in memory, keyed by file name.
type MemorySource struct {
	Payloads map[string]string
}

func (s *MemorySource) Name() string { return "memory" }

func (s *MemorySource) Files() ([]SourceFile, error) {
	names := slices.Sorted(maps.Keys(s.Payloads))
	files := make([]SourceFile, len(names))
	for i, name := range names {
		body := s.Payloads[name]
		files[i] = SourceFile{
			Name: name,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
		}
	}
	return files, nil
}

// Buffer reads every file into memory once. The returned files serve those
// bytes on every Open, so hashing and parsing see the same content even if
// the underlying file changes in between. A file that cannot be read keeps
// failing with its read error.
func Buffer(files []SourceFile) []SourceFile {
	out := make([]SourceFile, len(files))
	for i, f := range files {
		body, err := readAll(f)
		out[i] = SourceFile{
			Name: f.Name,
			Open: func() (io.ReadCloser, error) {
				if err != nil {
					return nil, err
				}
				return io.NopCloser(bytes.NewReader(body)), nil
			},
		}
	}
	return out
}

func readAll(f SourceFile) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return body, nil
}
