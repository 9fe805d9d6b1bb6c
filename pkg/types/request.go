package types

import (
	"fmt"
	"strings"
)

// ScanRequest describes a scan to create: which plan, against which target,
// on whose behalf.
type ScanRequest struct {
	User   string
	Plan   string
	Target string
}

// CreateScanBody is the JSON body of POST /scans.
type CreateScanBody struct {
	Plan          string        `json:"plan"`
	Configuration Configuration `json:"configuration"`
	User          string        `json:"user"`
}

// NewScanRequest trims and validates its arguments.
func NewScanRequest(user, plan, target string) (ScanRequest, error) {
	r := ScanRequest{
		User:   strings.TrimSpace(user),
		Plan:   strings.TrimSpace(plan),
		Target: strings.TrimSpace(target),
	}
	if err := r.Validate(); err != nil {
		return ScanRequest{}, err
	}
	return r, nil
}

// Validate checks that every field is set.
func (r ScanRequest) Validate() error {
	switch {
	case r.User == "":
		return fmt.Errorf("user cannot be empty")
	case r.Plan == "":
		return fmt.Errorf("plan cannot be empty")
	case r.Target == "":
		return fmt.Errorf("target cannot be empty")
	}
	return nil
}

// Body returns the create-scan payload for r.
func (r ScanRequest) Body() CreateScanBody {
	return CreateScanBody{
		Plan:          r.Plan,
		Configuration: Configuration{Target: r.Target},
		User:          r.User,
	}
}
