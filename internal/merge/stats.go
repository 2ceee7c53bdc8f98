package merge

// SourceStats counts what happened to the lines of one source.
type SourceStats struct {
	Name       string
	Read       int
	Written    int
	Duplicates int
	Skipped    int
}

// Stats summarizes a merge run. Written is the number of lines in the sink.
type Stats struct {
	Sources    []SourceStats
	Read       int
	Written    int
	Duplicates int
	Skipped    int

	// Index size when the run ended.
	Identifiers int
	Pairs       int
}

func (s *Stats) add(ss SourceStats) {
	s.Sources = append(s.Sources, ss)
	s.Read += ss.Read
	s.Written += ss.Written
	s.Duplicates += ss.Duplicates
	s.Skipped += ss.Skipped
}
