package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestFindModelFilesRecursesAndFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.fga"), []byte(""), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0o644)
	sub := filepath.Join(dir, "nested")
	os.Mkdir(sub, 0o755)
	os.WriteFile(filepath.Join(sub, "b.fga"), []byte(""), 0o644)

	got, err := FindModelFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, f := range got {
		names = append(names, filepath.Base(f))
	}
	sort.Strings(names)

	want := []string{"a.fga", "b.fga"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}

func TestFindModelFilesOnEmptyDir(t *testing.T) {
	dir := t.TempDir()
	got, err := FindModelFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no files, got %v", got)
	}
}
