package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrNotFound is returned by MarkCompleted when no pending task has the name.
var ErrNotFound = errors.New("no pending task with that name")

// Seed writes one pending task file per name into dir, creating it if
// needed. Repeated names get their own files.
func Seed(dir string, names []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		path, err := freePath(dir, name)
		if err != nil {
			return err
		}
		if err := writeTask(path, Task{Name: name, Status: Pending}); err != nil {
			return err
		}
	}
	return nil
}

// MarkCompleted marks the first pending task called name as completed at now.
func MarkCompleted(dir, name string, now time.Time) error {
	files, err := readDir(dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.task.Name != name || f.task.Status == Completed {
			continue
		}
		f.task.Status = Completed
		f.task.CompletedAt = now
		return writeTask(f.path, f.task)
	}
	return fmt.Errorf("mark %q completed: %w", name, ErrNotFound)
}

// writeTask atomically writes t to path.
func writeTask(path string, t Task) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write task temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename task file: %w", err)
	}

	return nil
}

// freePath picks an unused file name for a task, numbering duplicates.
func freePath(dir, name string) (string, error) {
	base := slug(name)
	for n := 1; ; n++ {
		file := base + ".json"
		if n > 1 {
			file = base + "-" + strconv.Itoa(n) + ".json"
		}
		path := filepath.Join(dir, file)
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat task file: %w", err)
		}
	}
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		s = "task"
	}
	return s
}
