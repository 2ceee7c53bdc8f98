// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON schema of a merge run report.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	Version         string           `json:"version"`
	RunID           string           `json:"run_id"`
	Output          string           `json:"output"`
	Namespaces      []string         `json:"namespaces"`
	MalformedPolicy string           `json:"malformed_policy"` // "strict" | "skip"
	Read            int              `json:"read"`
	Written         int              `json:"written"`
	Duplicates      int              `json:"duplicates"`
	Skipped         int              `json:"skipped,omitempty"`
	Identifiers     int              `json:"identifiers"`
	Pairs           int              `json:"pairs"`
	Sources         []SourceReportV1 `json:"sources"`
	Error           string           `json:"error,omitempty"`
}

// SourceReportV1 holds the counts of one input source.
type SourceReportV1 struct {
	Name       string `json:"name"`
	Read       int    `json:"read"`
	Written    int    `json:"written"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped,omitempty"`
}
