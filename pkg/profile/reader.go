/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reader.go
Description: Record readers for profile input. Delimited input goes through
encoding/csv with ragged rows allowed; line input yields each line as a one-field record.
*/

package profile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single line in line mode
const maxLineSize = 1 << 20

type recordReader interface {
	Read() ([]string, error)
}

func newRecordReader(r io.Reader, opts Options) recordReader {
	if opts.Lines {
		s := bufio.NewScanner(r)
		s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		return &lineReader{scanner: s}
	}
	c := csv.NewReader(r)
	c.Comma = opts.Delimiter
	c.FieldsPerRecord = -1
	c.LazyQuotes = true
	return c
}

type lineReader struct {
	scanner *bufio.Scanner
}

func (l *lineReader) Read() ([]string, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return []string{strings.TrimSuffix(l.scanner.Text(), "\r")}, nil
}

// readHeader returns the column names. Without a header row the first record is read
// to size the columns and returned for profiling.
func readHeader(r recordReader, opts Options) ([]string, []string, error) {
	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyInput
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if opts.Header {
		header := make([]string, len(record))
		for i, name := range record {
			header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
			if header[i] == "" {
				header[i] = columnName(i)
			}
		}
		return header, nil, nil
	}
	if opts.Lines {
		return []string{"value"}, record, nil
	}
	header := make([]string, len(record))
	for i := range record {
		header[i] = columnName(i)
	}
	return header, record, nil
}

func columnName(i int) string {
	return fmt.Sprintf("column_%d", i+1)
}
