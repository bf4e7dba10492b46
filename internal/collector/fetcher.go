package collector

// RowSource yields raw tabular rows: a header and string records.
type RowSource interface {
	Rows() (header []string, records [][]string, err error)
	Name() string
}

// StaticSource is an in-memory RowSource for tests and already-loaded data.
type StaticSource struct {
	Label   string
	Header  []string
	Records [][]string
}

func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s *StaticSource) Rows() ([]string, [][]string, error) {
	return s.Header, s.Records, nil
}
