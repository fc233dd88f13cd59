package parse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kaikalii/transactor/internal/models"
)

// LineError wraps a parse failure with the 1-based line number it
// occurred on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("invalid transaction on line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Reader streams transactions from comma-separated text. Blank lines
// are skipped, as is a leading header line whose first field is "type".
type Reader struct {
	scanner *bufio.Scanner
	line    int
	started bool
}

// NewReader wraps an input source.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Line returns the 1-based number of the most recently read line.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next transaction in the stream. It returns io.EOF
// when the input is exhausted, a *LineError for a malformed line, and
// any other error for an I/O failure while reading the source.
func (r *Reader) Next() (models.Transaction, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if !r.started {
			r.started = true
			// The header may follow any number of blank lines, but only
			// an exact "type" first field marks it as one.
			if first, _, _ := strings.Cut(line, ","); strings.TrimSpace(first) == "type" {
				continue
			}
		}
		tx, err := Transaction(line)
		if err != nil {
			return models.Transaction{}, &LineError{Line: r.line, Err: err}
		}
		return tx, nil
	}
	if err := r.scanner.Err(); err != nil {
		return models.Transaction{}, fmt.Errorf("error reading line %d: %w", r.line+1, err)
	}
	return models.Transaction{}, io.EOF
}
