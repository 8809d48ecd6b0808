package lineio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Reader is a port.LineSource over an io.Reader. Lines have no length limit.
type Reader struct {
	r       *bufio.Reader
	stripCR bool
	err     error
	done    bool
	count   int
}

// NewReader wraps r. When stripCR is set a trailing '\r' is removed from
// every line, so CRLF input converts like LF input.
func NewReader(r io.Reader, stripCR bool) *Reader {
	return &Reader{
		r:       bufio.NewReader(r),
		stripCR: stripCR,
	}
}

// Next returns the next line without its newline.
func (r *Reader) Next() (string, bool) {
	if r.done {
		return "", false
	}

	line, err := r.r.ReadString('\n')
	if err != nil {
		r.done = true
		if !errors.Is(err, io.EOF) {
			r.err = err
			return "", false
		}
		// A final line without a newline still counts.
		if line == "" {
			return "", false
		}
	}

	line = strings.TrimSuffix(line, "\n")
	if r.stripCR {
		line = strings.TrimSuffix(line, "\r")
	}
	r.count++
	return line, true
}

// Err returns the first non-EOF read error.
func (r *Reader) Err() error {
	return r.err
}

// Count returns the number of lines returned so far.
func (r *Reader) Count() int {
	return r.count
}
