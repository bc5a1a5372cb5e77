package repl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// resolvePath joins relative paths onto dataDir.
func resolvePath(dataDir, path string) string {
	if filepath.IsAbs(path) || dataDir == "" {
		return path
	}
	return filepath.Join(dataDir, path)
}

// readCSV parses every record of the file at path. Rows may be ragged.
func readCSV(path string) ([][]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("repl: %s is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("repl: parse %s: %w", path, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}
