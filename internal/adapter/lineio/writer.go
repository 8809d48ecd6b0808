package lineio

import (
	"bufio"
	"io"
	"strings"
)

// Writer is a port.LineSink that buffers output. Call Flush when done.
type Writer struct {
	w     *bufio.Writer
	lines int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteLine writes s and a newline.
func (w *Writer) WriteLine(s string) error {
	if _, err := w.w.WriteString(s); err != nil {
		return err
	}
	w.lines++
	return w.w.WriteByte('\n')
}

// Write writes s without adding anything.
func (w *Writer) Write(s string) error {
	w.lines += strings.Count(s, "\n")
	_, err := w.w.WriteString(s)
	return err
}

// Lines returns the number of newlines written.
func (w *Writer) Lines() int {
	return w.lines
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}
