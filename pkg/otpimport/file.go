package otpimport

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// maxLineSize bounds a single URI line.
const maxLineSize = 64 * 1024

// ReadItems reads newline-delimited items, trimming each line and skipping
// blank ones.
func ReadItems(r io.Reader) ([]string, error) {
	var items []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			items = append(items, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Join(ErrFileProcess, err)
	}

	return items, nil
}

// WriteReport writes the failure report as indented JSON.
func WriteReport(w io.Writer, rep Report) error {
	if rep.Invalid == nil {
		rep.Invalid = []Failure{}
	}
	if rep.Duplicate == nil {
		rep.Duplicate = []Failure{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		return errors.Join(ErrFileProcess, err)
	}
	return nil
}
