// Package roster reads and writes the ticketdraw roster file.
//
// A roster file is plain text with one participant per line: the name,
// a single-character delimiter and the weight as a base 10 integer. There
// is no header and no escaping, so names cannot contain the delimiter.
package roster

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DefaultDelimiter separates name and weight unless configured otherwise
const DefaultDelimiter = '|'

// Record is one line of a roster file
type Record struct {
	Name   string
	Weight int
}

// Decode reads records from r and calls fn for each one, in file order.
// It stops at the first malformed line or the first error from fn; there
// is no skipping of bad lines.
func Decode(r io.Reader, delim rune, fn func(line int, rec Record) error) error {
	scanner := bufio.NewScanner(r)
	sep := string(delim)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		fields := strings.Split(text, sep)
		if len(fields) != 2 {
			return &LineError{Line: line, Text: text, Err: ErrFieldCount}
		}

		weight, err := strconv.Atoi(fields[1])
		if err != nil {
			return &LineError{Line: line, Text: text, Err: ErrWeight}
		}

		err = fn(line, Record{Name: fields[0], Weight: weight})
		if err != nil {
			return &LineError{Line: line, Text: text, Err: err}
		}
	}

	return scanner.Err()
}

// Encode writes recs to w, one per line, with no line terminator after
// the last record.
func Encode(w io.Writer, recs []Record, delim rune) error {
	bw := bufio.NewWriter(w)
	sep := string(delim)

	for i, rec := range recs {
		if strings.Contains(rec.Name, sep) || strings.ContainsAny(rec.Name, "\r\n") {
			return &LineError{Line: i + 1, Text: rec.Name, Err: ErrUnencodable}
		}
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(rec.Name + sep + strconv.Itoa(rec.Weight)); err != nil {
			return err
		}
	}

	return bw.Flush()
}
