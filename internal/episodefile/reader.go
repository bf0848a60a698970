package episodefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformedLine reports a line that does not have the expected shape.
var ErrMalformedLine = errors.New("malformed line")

// LineError locates a malformed line.
type LineError struct {
	File string
	Line int
	Text string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s, line %d: %v: %q", e.File, e.Line, ErrMalformedLine, e.Text)
}

func (e *LineError) Unwrap() error { return ErrMalformedLine }

// Reader iterates over the lines of a file and tracks the line number.
type Reader struct {
	name    string
	scanner *bufio.Scanner
	line    int
	text    string
}

// NewReader wraps r; name is used in error messages.
func NewReader(name string, r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Reader{name: name, scanner: scanner}
}

// Next advances to the next line, without its line terminator.
func (r *Reader) Next() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.line++
	r.text = strings.TrimSuffix(r.scanner.Text(), "\r")
	return true
}

// Text returns the current line.
func (r *Reader) Text() string { return r.text }

// Line returns the one-based number of the current line.
func (r *Reader) Line() int { return r.line }

// Name returns the file name given to NewReader.
func (r *Reader) Name() string { return r.name }

// Err returns the first read error.
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", r.name, err)
	}
	return nil
}

// Malformed builds a LineError for the current line.
func (r *Reader) Malformed() error {
	return &LineError{File: r.name, Line: r.line, Text: r.text}
}

func openReader(path string, fn func(*Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r := NewReader(path, f)
	if err := fn(r); err != nil {
		return err
	}
	return r.Err()
}
