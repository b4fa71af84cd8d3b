package tasks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Lister is the task collaborator the module polls.
type Lister interface {
	ListTaskNames() ([]string, error)
	ListCompletedTaskNames() ([]string, error)
}

// Reader reads task files from a directory. Each *.json file holds one Task.
type Reader struct {
	dir string
}

// NewReader creates a Reader for dir.
func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Dir returns the directory the reader scans.
func (r *Reader) Dir() string { return r.dir }

// ListTaskNames returns the name of every task, duplicates included, in file
// name order. A missing directory yields no tasks.
func (r *Reader) ListTaskNames() ([]string, error) {
	files, err := readDir(r.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.task.Name
	}
	return names, nil
}

// ListCompletedTaskNames returns the names of completed tasks ordered by
// completion time, then file name.
func (r *Reader) ListCompletedTaskNames() ([]string, error) {
	files, err := readDir(r.dir)
	if err != nil {
		return nil, err
	}
	var done []taskFile
	for _, f := range files {
		if f.task.Status == Completed {
			done = append(done, f)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].task.CompletedAt.Before(done[j].task.CompletedAt)
	})
	names := make([]string, len(done))
	for i, f := range done {
		names[i] = f.task.Name
	}
	return names, nil
}

type taskFile struct {
	path string
	task Task
}

// readDir loads every parseable task file in dir, sorted by file name.
// Unreadable or malformed files are skipped.
func readDir(dir string) ([]taskFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tasks dir: %w", err)
	}

	var files []taskFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("task file read error", "file", entry.Name(), "error", err)
			continue
		}

		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			slog.Debug("task file parse error", "file", entry.Name(), "error", err)
			continue
		}
		if t.Name == "" {
			slog.Debug("task file without name", "file", entry.Name())
			continue
		}
		files = append(files, taskFile{path: path, task: t})
	}

	// os.ReadDir already sorts by file name.
	return files, nil
}
