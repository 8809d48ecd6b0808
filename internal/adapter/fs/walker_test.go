package fs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("int x;\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relPaths(t *testing.T, w *Walker, root string) []string {
	t.Helper()
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	var out []string
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	sort.Strings(out)
	return out
}

func TestWalker_IncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"main.c",
		"util.h",
		"README.md",
		"lib/list.c",
		"build/gen.c",
		".git/hooks/x.c",
	)

	w := NewWalker([]string{"**/*.c", "**/*.h"}, []string{"**/.git/**", "build/**"})
	got := relPaths(t, w, root)

	want := []string{"lib/list.c", "main.c", "util.h"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestWalker_DefaultIncludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.c", "b.h", "c.txt")

	got := relPaths(t, NewWalker(nil, nil), root)
	if len(got) != 1 || got[0] != "a.c" {
		t.Errorf("expected [a.c], got %v", got)
	}
}

func TestWalker_FileInfo(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/a.c")

	files, err := NewWalker(nil, nil).Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if !filepath.IsAbs(files[0].Path) {
		t.Errorf("expected absolute path, got %s", files[0].Path)
	}
	if files[0].Size != int64(len("int x;\n")) {
		t.Errorf("unexpected size %d", files[0].Size)
	}
	if files[0].ModTime == 0 {
		t.Error("expected ModTime to be set")
	}
}

func TestWalker_MissingRoot(t *testing.T) {
	_, err := NewWalker(nil, nil).Walk(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Error("expected error for missing root")
	}
}
