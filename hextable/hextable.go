/*
Package hextable implements a writer for comma-delimited, line-wrapped tables
of hexadecimal literals suitable for use as C array initializers.

Each value is written as 0x followed by a fixed number of uppercase hex
digits. Values are separated by a comma and a space, except at the end of a
display line where the comma is followed by a newline and a two space
indent. The final value is followed by " }" to close the table.
*/
package hextable

import (
	"errors"
	"fmt"
	"io"
)

const (
	separator = ","
	space     = " "
	wrap      = "\n  "
	closing   = " }"
)

// ErrFull is returned when writing more values than the table was sized for
var ErrFull = errors.New("hextable: table is full")

// Writer writes a single table of hex values to an underlying io.Writer. It
// must be Reset before writing each independent table.
type Writer struct {
	w io.Writer

	count   int // values in the table
	index   int // values written so far
	digits  int
	columns int
	column  int
}

// New returns a Writer for a table of count values, with columns values per
// line and digits hex digits per value
func New(w io.Writer, count, columns, digits int) *Writer {
	t := &Writer{w: w}
	t.Reset(count, columns, digits)
	return t
}

// Reset prepares the Writer for a new independent table
func (t *Writer) Reset(count, columns, digits int) {
	if columns < 1 {
		columns = 1
	}
	if digits < 0 {
		digits = 0
	}
	t.count = count
	t.index = 0
	t.digits = digits
	t.columns = columns
	t.column = columns
}

// Len returns the number of values the table was sized for
func (t *Writer) Len() int {
	return t.count
}

// Written returns the number of values written since the last Reset
func (t *Writer) Written() int {
	return t.index
}

// Done reports whether every value has been written and the table closed
func (t *Writer) Done() bool {
	return t.count > 0 && t.index >= t.count
}

// WriteValue writes the next value in the table, closing the table after
// the last one
func (t *Writer) WriteValue(v uint64) error {
	if t.index >= t.count {
		return ErrFull
	}

	if t.index > 0 {
		if err := t.writeString(separator); err != nil {
			return err
		}
		// No trailing space when the previous value ended its line
		if t.column < t.columns-1 {
			if err := t.writeString(space); err != nil {
				return err
			}
		}
	}

	t.column++
	if t.column >= t.columns {
		if t.index > 0 {
			if err := t.writeString(wrap); err != nil {
				return err
			}
		}
		t.column = 0
	}

	if _, err := fmt.Fprintf(t.w, "0x%0*X", t.digits, v); err != nil {
		return err
	}

	t.index++
	if t.index >= t.count {
		return t.writeString(closing)
	}

	return nil
}

func (t *Writer) writeString(s string) error {
	_, err := io.WriteString(t.w, s)
	return err
}
