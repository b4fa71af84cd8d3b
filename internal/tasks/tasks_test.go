package tasks

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReader_MissingDir(t *testing.T) {
	r := NewReader("/nonexistent/tasks")
	names, err := r.ListTaskNames()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
	done, err := r.ListCompletedTaskNames()
	if err != nil || len(done) != 0 {
		t.Fatalf("completed = %v, %v", done, err)
	}
}

func TestReader_ListsAndOrders(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	writeJSON(t, filepath.Join(dir, "a.json"), Task{Name: "Wires", Status: Completed, CompletedAt: base.Add(2 * time.Minute)})
	writeJSON(t, filepath.Join(dir, "b.json"), Task{Name: "Memory", Status: Pending})
	writeJSON(t, filepath.Join(dir, "c.json"), Task{Name: "Maze", Status: Completed, CompletedAt: base})
	writeJSON(t, filepath.Join(dir, "d.json"), Task{Name: "Keypad", Status: Completed, CompletedAt: base})
	// Ignored: wrong extension, malformed, no name, directory.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeJSON(t, filepath.Join(dir, "e.json"), Task{Status: Pending})
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewReader(dir)
	names, err := r.ListTaskNames()
	if err != nil {
		t.Fatalf("ListTaskNames: %v", err)
	}
	want := []string{"Wires", "Memory", "Maze", "Keypad"}
	if !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}

	done, err := r.ListCompletedTaskNames()
	if err != nil {
		t.Fatalf("ListCompletedTaskNames: %v", err)
	}
	wantDone := []string{"Maze", "Keypad", "Wires"}
	if !slices.Equal(done, wantDone) {
		t.Errorf("completed = %v, want %v", done, wantDone)
	}
}

func TestSeed_AndMarkCompleted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tasks")
	if err := Seed(dir, []string{"Wires", "Forget Me Not", "Wires", " ", "Hogwarts"}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	for _, file := range []string{"wires.json", "wires-2.json", "forget-me-not.json", "hogwarts.json"} {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			t.Errorf("expected %s: %v", file, err)
		}
	}

	r := NewReader(dir)
	names, err := r.ListTaskNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 4 {
		t.Fatalf("names = %v, want 4 entries", names)
	}

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	if err := MarkCompleted(dir, "Wires", now); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if err := MarkCompleted(dir, "Wires", now.Add(time.Second)); err != nil {
		t.Fatalf("MarkCompleted second copy: %v", err)
	}
	if err := MarkCompleted(dir, "Wires", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("third MarkCompleted error = %v, want ErrNotFound", err)
	}
	if err := MarkCompleted(dir, "Maze", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown task error = %v, want ErrNotFound", err)
	}

	done, err := r.ListCompletedTaskNames()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(done, []string{"Wires", "Wires"}) {
		t.Errorf("completed = %v", done)
	}

	// No temp files left behind.
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files %v", matches)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wires", "wires"},
		{"The Swan", "the-swan"},
		{"  Who's on First?  ", "who-s-on-first"},
		{"Ultimate-Cycle", "ultimate-cycle"},
		{"!!!", "task"},
	}
	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
