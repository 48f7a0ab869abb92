package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives rendered artifacts. The compiler uses two independent
// sinks: the primary artifact tree the host engine scans, and the debug
// mirror outside it. Emitters never decide where files land.
type Sink interface {
	// Write stores data at the given path relative to the sink root and
	// returns the absolute path written.
	Write(rel string, data []byte) (string, error)
}

// DirSink writes artifacts under a root directory, creating intermediate
// directories as needed.
type DirSink struct {
	root string
}

// NewDirSink returns a sink rooted at the given directory.
func NewDirSink(root string) *DirSink {
	return &DirSink{root: root}
}

// Root returns the sink's root directory.
func (s *DirSink) Root() string { return s.root }

// Write implements Sink.
func (s *DirSink) Write(rel string, data []byte) (string, error) {
	path := filepath.Join(s.root, filepath.Clean(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", rel, err)
	}
	return path, nil
}

// WriteAll writes every file through the sink, returning the absolute
// paths in input order. The first failure aborts.
func WriteAll(s Sink, files []File) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := s.Write(f.Path, f.Content)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
