// Package source reads and cleans JSON Lines datasets of API call records.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformedLine is wrapped when a non-blank line is not a JSON object.
var ErrMalformedLine = errors.New("malformed record")

// ReadFile parses the dataset at path. See Read.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses one JSON object per non-blank line, flattening nested objects
// into dotted column names. Any malformed line fails the whole read.
func Read(r io.Reader) (*Table, error) {
	t := &Table{}
	seen := make(map[string]struct{})

	br := bufio.NewReaderSize(r, 256*1024)

	lineNo := 0
	for {
		raw, readErr := br.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, readErr)
		}
		if len(raw) > 0 {
			lineNo++
		}

		if line := bytes.TrimSpace(raw); len(line) > 0 {
			row := make(Row)
			var keys []string
			if err := decodeLine(line, row, &keys); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedLine, lineNo, err)
			}
			for _, k := range keys {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					t.Columns = append(t.Columns, k)
				}
			}
			t.Rows = append(t.Rows, row)
		}

		if readErr == io.EOF {
			break
		}
	}
	return t, nil
}

// decodeLine decodes a single top-level object, rejecting trailing data.
func decodeLine(line []byte, row Row, keys *[]string) error {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	if err := decodeObject(dec, "", row, keys); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after object")
	}
	return nil
}

// decodeObject walks one object with the token API so key order survives.
// Nested objects recurse with a dotted prefix; everything else is stored.
func decodeObject(dec *json.Decoder, prefix string, row Row, keys *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		if v := bytes.TrimLeft(raw, " \t\r\n"); len(v) > 0 && v[0] == '{' {
			inner := json.NewDecoder(bytes.NewReader(raw))
			inner.UseNumber()
			if err := decodeObject(inner, name, row, keys); err != nil {
				return err
			}
			continue
		}

		var v any
		vdec := json.NewDecoder(bytes.NewReader(raw))
		vdec.UseNumber()
		if err := vdec.Decode(&v); err != nil {
			return err
		}
		if _, dup := row[name]; !dup {
			*keys = append(*keys, name)
		}
		row[name] = v
	}

	// closing '}'
	_, err = dec.Token()
	return err
}
