// internal/mitab/record.go
package mitab

import (
	"fmt"
	"strings"
)

// MinFields is the number of mandatory interactor columns.
const MinFields = 2

// Record is one MITAB line. Raw is exactly what was read, terminator included.
type Record struct {
	Raw        string
	Fields     []string
	Terminated bool
}

// MalformedRecordError reports a line without both interactor columns.
type MalformedRecordError struct {
	Source string
	Line   int // 1-based; 0 when unknown
	Fields int
}

func (e *MalformedRecordError) Error() string {
	where := e.Source
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	if where == "" {
		return fmt.Sprintf("malformed record: %d field(s), need at least %d tab-separated fields", e.Fields, MinFields)
	}
	return fmt.Sprintf("%s: malformed record: %d field(s), need at least %d tab-separated fields", where, e.Fields, MinFields)
}

// SplitTerminator detaches a trailing "\n" or "\r\n" from line.
func SplitTerminator(line string) (body, term string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// Split cuts body on tabs. Fields past the second are returned untouched.
func Split(body string) ([]string, error) {
	f := strings.Split(body, "\t")
	if len(f) < MinFields {
		return nil, &MalformedRecordError{Fields: len(f)}
	}
	return f, nil
}

// Parse splits a raw line (terminator optional) into a Record.
func Parse(line string) (Record, error) {
	body, term := SplitTerminator(line)
	f, err := Split(body)
	if err != nil {
		return Record{}, err
	}
	return Record{Raw: line, Fields: f, Terminated: term != ""}, nil
}

// CanonicalKey joins the normalized identifiers and the untouched trailing
// columns with tabs. The smaller identifier goes first, so a pair reported
// as (A, B) in one line and (B, A) in another yields the same key.
func CanonicalKey(id1, id2 string, rest []string) string {
	if id2 < id1 {
		id1, id2 = id2, id1
	}
	n := len(id1) + len(id2) + 1
	for _, r := range rest {
		n += len(r) + 1
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteString(id1)
	b.WriteByte('\t')
	b.WriteString(id2)
	for _, r := range rest {
		b.WriteByte('\t')
		b.WriteString(r)
	}
	return b.String()
}
