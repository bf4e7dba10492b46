package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads a vendor export from a delimited text file.
type CSVSource struct {
	Path  string
	Comma rune
}

// NewCSVSource creates a source for path. Tab-separated .txt exports are
// detected from the header line.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return s.Path }

func (s *CSVSource) Rows() ([]string, [][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return readDelimited(f, s.Comma)
}

func readDelimited(r io.Reader, comma rune) ([]string, [][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	if comma == 0 {
		comma = sniffComma(text)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty input")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read records: %w", err)
	}
	return header, records, nil
}

func sniffComma(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, "\t") > strings.Count(first, ",") {
		return '\t'
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
