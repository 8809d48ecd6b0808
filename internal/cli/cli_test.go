package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ansify/internal/domain"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "<1s"},
		{42 * time.Second, "42s"},
		{3*time.Minute + 5*time.Second, "3m5s"},
		{2*time.Hour + 10*time.Minute, "2h10m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestResolveMode(t *testing.T) {
	defer func() {
		convertKR, convertProtos, convertMode = false, false, ""
	}()

	mode, err := resolveMode("ansi")
	if err != nil || mode != domain.ModeANSI {
		t.Errorf("expected configured ansi mode, got %v (%v)", mode, err)
	}

	convertKR = true
	if mode, _ := resolveMode("ansi"); mode != domain.ModeKR {
		t.Errorf("expected -k to win, got %v", mode)
	}

	convertKR, convertProtos = false, true
	if mode, _ := resolveMode("ansi"); mode != domain.ModePrototypes {
		t.Errorf("expected -p to win, got %v", mode)
	}

	convertProtos, convertMode = false, "bogus"
	if _, err := resolveMode("ansi"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "old.c")
	out := filepath.Join(dir, "new.c")
	if err := os.WriteFile(in, []byte("int add(a, b)\nint a, b;\n{\n  return a + b;\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"--dir", dir, "convert", "-q", in, out})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "int add(int a,\n        int b)\n{\n  return a + b;\n}\n"
	if string(data) != want {
		t.Errorf("unexpected output:\n%s", data)
	}
}
