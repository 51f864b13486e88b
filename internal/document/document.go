// Package document acquires JSON values for validation: from raw
// strings, from files, or extracted out of a larger document with a
// JSONPath selector.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/theory/jsonpath"
)

var (
	// ErrSyntax indicates malformed JSON input.
	ErrSyntax = errors.New("invalid JSON document")
	// ErrNoMatch indicates a JSONPath selector that matched nothing.
	ErrNoMatch = errors.New("selector matched nothing")
)

// FromString decodes a JSON document from raw text.
func FromString(text string) (any, error) {
	return decode(strings.NewReader(text))
}

// FromFile decodes a JSON document from a file. File errors are
// surfaced unchanged so callers can inspect them with errors.Is.
func FromFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// decode reads one or more concatenated JSON values. Numbers are kept
// as json.Number so integer operands compare without precision loss.
// A stream of values decodes to an array document.
func decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var values []any
	for {
		var value any
		if err := dec.Decode(&value); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		values = append(values, value)
	}

	switch len(values) {
	case 0:
		return nil, fmt.Errorf("%w: input is empty", ErrSyntax)
	case 1:
		return values[0], nil
	default:
		return values, nil
	}
}

// Select extracts the value(s) under a JSONPath expression. A single
// match is returned as-is; multiple matches form an array document.
func Select(doc any, pathExpr string) (any, error) {
	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", pathExpr, err)
	}

	matches := path.Select(doc)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, pathExpr)
	case 1:
		return matches[0], nil
	default:
		selected := make([]any, 0, len(matches))
		for _, match := range matches {
			selected = append(selected, match)
		}
		return selected, nil
	}
}
