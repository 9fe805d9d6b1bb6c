package types

// ScanState is the lifecycle state the backend reports for a scan.
type ScanState string

const (
	StateCreated    ScanState = "CREATED"
	StateQueued     ScanState = "QUEUED"
	StatePending    ScanState = "PENDING"
	StateStarted    ScanState = "STARTED"
	StateRunning    ScanState = "RUNNING"
	StateStopping   ScanState = "STOPPING"
	StateFinished   ScanState = "FINISHED"
	StateTerminated ScanState = "TERMINATED"
	StateFailed     ScanState = "FAILED"
	StateStopped    ScanState = "STOPPED"
	StateAborted    ScanState = "ABORTED"
)

// IsTerminal reports whether no further progress follows s.
// Unrecognized states are never terminal.
func (s ScanState) IsTerminal() bool {
	switch s {
	case StateFinished, StateTerminated, StateFailed, StateStopped, StateAborted:
		return true
	default:
		return false
	}
}

// IsKnown reports whether s is one of the states the backend is known to emit.
func (s ScanState) IsKnown() bool {
	switch s {
	case StateCreated, StateQueued, StatePending, StateStarted, StateRunning, StateStopping:
		return true
	default:
		return s.IsTerminal()
	}
}

// Plugin describes the plugin a session executed.
type Plugin struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Class   string `json:"class,omitempty"`
	Weight  string `json:"weight,omitempty"`
}

// IssueLink is a URL attached to an issue: evidence in URLs, references in
// FurtherInfo. Extra is whatever the plugin attached and is kept as decoded.
type IssueLink struct {
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
	Extra any    `json:"extra,omitempty"`
}

// Issue is a single finding reported by a plugin. The backend emits
// capitalized keys (Summary, Severity); decoding matches them case-insensitively.
type Issue struct {
	ID          string      `json:"id"`
	Code        string      `json:"code,omitempty"`
	Summary     string      `json:"summary"`
	Severity    string      `json:"severity,omitempty"`
	Description string      `json:"description,omitempty"`
	Solution    string      `json:"solution,omitempty"`
	URLs        []IssueLink `json:"urls,omitempty"`
	FurtherInfo []IssueLink `json:"furtherInfo,omitempty"`
}

// Session is the record of one plugin execution within a scan.
type Session struct {
	ID          string    `json:"id,omitempty"`
	State       ScanState `json:"state,omitempty"`
	Plugin      Plugin    `json:"plugin"`
	Description string    `json:"description,omitempty"`
	Issues      []Issue   `json:"issues"`
}

// PlanRef is the plan reference embedded in a scan.
type PlanRef struct {
	Name     string `json:"name"`
	Revision int    `json:"revision"`
}

// Configuration is the scan configuration submitted at creation time.
type Configuration struct {
	Target string `json:"target"`
}

// Scan is a snapshot of a backend scan resource. Timestamps are Unix seconds.
type Scan struct {
	ID            string        `json:"id"`
	State         ScanState     `json:"state"`
	Plan          *PlanRef      `json:"plan,omitempty"`
	Configuration Configuration `json:"configuration"`
	Sessions      []Session     `json:"sessions"`
	Created       *int64        `json:"created,omitempty"`
	Queued        *int64        `json:"queued,omitempty"`
	Started       *int64        `json:"started,omitempty"`
	Finished      *int64        `json:"finished,omitempty"`
}

// IssueCount returns the total number of issues across all sessions.
func (s *Scan) IssueCount() int {
	n := 0
	for _, sess := range s.Sessions {
		n += len(sess.Issues)
	}
	return n
}

// Plan is an entry of the backend's plan catalogue.
type Plan struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
