package domain

import "time"

// Status is the kind of an Outcome
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusError Status = "error"
)

// Outcome is the result of running a single test case
type Outcome struct {
	Name       string        `json:"name"`
	Status     Status        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Details    string        `json:"details,omitempty"`    // Underlying error text, if any
	Difference float64       `json:"difference,omitempty"` // Measured difference on Pass/Fail
	DiffPath   string        `json:"diff_path,omitempty"`
	MockDigest string        `json:"mock_digest,omitempty"` // Canonical JSON digest of the mock
	Duration   time.Duration `json:"duration"`
	Resolved   bool          `json:"resolved,omitempty"` // Marked as looked-at in the failures viewer
}

// Pass builds a passing outcome
func Pass(name string, difference float64) Outcome {
	return Outcome{Name: name, Status: StatusPass, Difference: difference}
}

// Fail builds a mismatch outcome
func Fail(name, reason string, difference float64) Outcome {
	return Outcome{Name: name, Status: StatusFail, Reason: reason, Difference: difference}
}

// Error builds an outcome for a case that could not be evaluated
func Error(name, reason string, err error) Outcome {
	o := Outcome{Name: name, Status: StatusError, Reason: reason}
	if err != nil {
		o.Details = err.Error()
	}
	return o
}

// Passed reports whether the outcome is a Pass
func (o Outcome) Passed() bool {
	return o.Status == StatusPass
}

// RunMeta contains metadata about an image test run
type RunMeta struct {
	RunID           string   `json:"run_id"`
	Total           int      `json:"total"`
	Passed          int      `json:"passed"`
	Failed          int      `json:"failed"`
	Errored         int      `json:"errored"`
	Duration        string   `json:"duration"`
	DurationSeconds float64  `json:"duration_seconds"`
	Model           string   `json:"model"`
	Workers         int      `json:"workers"`
	Threshold       float64  `json:"threshold"`
	Patterns        []string `json:"patterns,omitempty"`
	Timestamp       string   `json:"timestamp"`
}

// RunOutput is the complete stored structure for a run
type RunOutput struct {
	Meta     RunMeta   `json:"meta"`
	Outcomes []Outcome `json:"outcomes"`
}

// NonPassing returns the outcomes that are not a Pass
func (r *RunOutput) NonPassing() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Passed() {
			out = append(out, o)
		}
	}
	return out
}
