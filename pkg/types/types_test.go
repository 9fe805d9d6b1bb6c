package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanState_IsTerminal(t *testing.T) {
	for _, s := range []ScanState{StateFinished, StateTerminated, StateFailed, StateStopped, StateAborted} {
		assert.True(t, s.IsTerminal(), s)
	}
	for _, s := range []ScanState{StateCreated, StateQueued, StatePending, StateStarted, StateRunning, StateStopping, "WEIRD", ""} {
		assert.False(t, s.IsTerminal(), s)
	}
}

func TestScanState_IsKnown(t *testing.T) {
	assert.True(t, StatePending.IsKnown())
	assert.True(t, StateFailed.IsKnown())
	assert.False(t, ScanState("WEIRD").IsKnown())
}

func TestNewScanRequest(t *testing.T) {
	r, err := NewScanRequest(" a@example.com ", "basic", "http://example.test/")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", r.User)
	assert.Equal(t, "basic", r.Plan)
	assert.Equal(t, "http://example.test/", r.Target)
}

func TestNewScanRequest_Empty(t *testing.T) {
	_, err := NewScanRequest("a@example.com", "  ", "http://example.test/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan")
}

func TestScanRequest_Body(t *testing.T) {
	r := ScanRequest{User: "a@example.com", Plan: "basic", Target: "http://example.test/"}

	data, err := json.Marshal(r.Body())
	require.NoError(t, err)
	assert.JSONEq(t, `{"plan":"basic","configuration":{"target":"http://example.test/"},"user":"a@example.com"}`, string(data))
}

func TestScan_DecodeBackendIssueKeys(t *testing.T) {
	body := `{"id":"S1","state":"FINISHED","sessions":[
		{"plugin":{"name":"HSTSPlugin"},"issues":[{"Id":"H1","Summary":"Site is reachable","Severity":"Info"}]}
	]}`

	var scan Scan
	require.NoError(t, json.Unmarshal([]byte(body), &scan))
	require.Len(t, scan.Sessions, 1)
	require.Len(t, scan.Sessions[0].Issues, 1)
	issue := scan.Sessions[0].Issues[0]
	assert.Equal(t, "H1", issue.ID)
	assert.Equal(t, "Site is reachable", issue.Summary)
	assert.Equal(t, "Info", issue.Severity)
	assert.Equal(t, 1, scan.IssueCount())
}
