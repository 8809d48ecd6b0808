package lineio

import (
	"bytes"
	"strings"
	"testing"
)

func collect(r *Reader) []string {
	var lines []string
	for {
		line, ok := r.Next()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestReader_Lines(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"a\n", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		got := collect(NewReader(strings.NewReader(tt.input), false))
		if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
			t.Errorf("lines of %q = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestReader_StripCR(t *testing.T) {
	r := NewReader(strings.NewReader("int f(a)\r\nint a;\r\n"), true)
	got := collect(r)
	if len(got) != 2 || got[0] != "int f(a)" || got[1] != "int a;" {
		t.Errorf("unexpected lines: %q", got)
	}
	if r.Count() != 2 {
		t.Errorf("expected count 2, got %d", r.Count())
	}
	if r.Err() != nil {
		t.Errorf("unexpected error: %v", r.Err())
	}
}

func TestReader_KeepsCRWhenDisabled(t *testing.T) {
	got := collect(NewReader(strings.NewReader("x\r\n"), false))
	if len(got) != 1 || got[0] != "x\r" {
		t.Errorf("expected carriage return to be kept, got %q", got)
	}
}

func TestReader_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200000)
	got := collect(NewReader(strings.NewReader(long + "\n"), false))
	if len(got) != 1 || got[0] != long {
		t.Error("expected a single long line to survive intact")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteLine("int f(a)"); err != nil {
		t.Fatal(err)
	}
	if err := w.Write("int a ;\n{\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "int f(a)\nint a ;\n{\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
	if w.Lines() != 3 {
		t.Errorf("expected 3 lines, got %d", w.Lines())
	}
}
