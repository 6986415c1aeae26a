package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/skychart/internal/ctxlog"
)

// Star is one catalogue entry. Fields are set once by Load and never
// mutated afterwards.
type Star struct {
	Name   string
	RADeg  float64
	DecDeg float64
	Mag    float64
}

// Required header columns. Extra columns are ignored and column order does
// not matter.
var requiredColumns = []string{"name", "ra_deg", "dec_deg", "mag"}

// SchemaError reports a catalogue file whose header is missing a required
// column.
type SchemaError struct {
	Path   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalogue %s: header is missing required column %q", e.Path, e.Column)
}

// ParseError reports a data row whose numeric field could not be parsed.
// Line is the 1-based line number in the file, header included.
type ParseError struct {
	Path  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("catalogue %s: line %d: field %q: cannot parse %q as float", e.Path, e.Line, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the CSV catalogue at path and returns its stars in file order.
// Any failure aborts the whole load: a missing or unreadable file, a header
// without the required columns, or a numeric field that does not parse all
// return an error and a nil slice.
func Load(ctx context.Context, path string) ([]Star, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading star catalogue.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Path: path, Column: requiredColumns[0]}
	}
	if err != nil {
		return nil, fmt.Errorf("read catalogue header %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &SchemaError{Path: path, Column: name}
		}
	}

	var stars []Star
	line := 1 // header was line 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalogue %s: %w", path, err)
		}
		line++

		star := Star{Name: field(record, columns["name"])}
		star.RADeg, err = parseFloat(record, columns, "ra_deg", path, line)
		if err != nil {
			return nil, err
		}
		star.DecDeg, err = parseFloat(record, columns, "dec_deg", path, line)
		if err != nil {
			return nil, err
		}
		star.Mag, err = parseFloat(record, columns, "mag", path, line)
		if err != nil {
			return nil, err
		}
		stars = append(stars, star)
	}

	logger.Debug("Catalogue loaded.", "path", path, "stars", len(stars))
	return stars, nil
}

// field returns the idx-th value of record, or "" when the row is shorter
// than the header.
func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}

func parseFloat(record []string, columns map[string]int, name, path string, line int) (float64, error) {
	raw := field(record, columns[name])
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{Path: path, Line: line, Field: name, Value: raw, Err: err}
	}
	return v, nil
}
