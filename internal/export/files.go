package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteChunks writes each chunk to <dir>/chunk_NNNN.sql and returns the
// file paths in chunk order.
func WriteChunks(dir string, chunks []Chunk) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}
	paths := make([]string, 0, len(chunks))
	for _, c := range chunks {
		path := filepath.Join(dir, fmt.Sprintf("chunk_%04d.sql", c.Index))
		if err := os.WriteFile(path, []byte(c.SQL), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write chunk %d: %w", c.Index, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadChunks loads a previously exported chunk sequence in index order.
func ReadChunks(dir string) ([]Chunk, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "chunk_*.sql"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}
	sort.Strings(matches)

	chunks := make([]Chunk, 0, len(matches))
	for i, path := range matches {
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		chunks = append(chunks, Chunk{Index: i + 1, SQL: string(body)})
	}
	return chunks, nil
}
