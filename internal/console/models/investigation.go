package models

type TimelineEvent struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Investigation is a case of the investigation workspace. The workspace is
// not backed by an endpoint yet; only the timeline is.
type Investigation struct {
	ID        string
	Title     string
	Severity  string
	Status    string
	Owner     string
	CreatedAt string
	SourceIP  string
	UserAgent string
	RawLogs   []string
}
