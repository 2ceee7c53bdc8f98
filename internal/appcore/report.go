package appcore

import (
	"io"

	"mitabmerge/internal/jsonutil"
	"mitabmerge/internal/merge"
	"mitabmerge/internal/version"
	"mitabmerge/pkg/api"
)

type report struct {
	api.ReportV1
}

func newReport(runID string, o Options, ns []string) *report {
	return &report{api.ReportV1{
		Version:         version.Version,
		RunID:           runID,
		Output:          o.Output,
		Namespaces:      ns,
		MalformedPolicy: o.Policy.String(),
		Sources:         []api.SourceReportV1{},
	}}
}

func (r *report) fill(st merge.Stats, err error) {
	r.Read, r.Written, r.Duplicates, r.Skipped = st.Read, st.Written, st.Duplicates, st.Skipped
	r.Identifiers, r.Pairs = st.Identifiers, st.Pairs
	for _, s := range st.Sources {
		r.Sources = append(r.Sources, api.SourceReportV1{
			Name:       s.Name,
			Read:       s.Read,
			Written:    s.Written,
			Duplicates: s.Duplicates,
			Skipped:    s.Skipped,
		})
	}
	if err != nil {
		r.Error = err.Error()
	}
}

// write encodes the report to path; "-" means stderr.
func (r *report) write(path string, stderr io.Writer) error {
	return jsonutil.WritePretty(path, stderr, r.ReportV1)
}
