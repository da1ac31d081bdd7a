package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pixcheck/internal/domain"
	"pixcheck/internal/fsx"
)

const junitSuiteName = "image"

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Errors   int              `xml:"errors,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Time      string          `xml:"time,attr"`
	TestCases []junitTestCase `xml:"testcase"`
	SystemOut string          `xml:"system-out,omitempty"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitProblem `xml:"failure,omitempty"`
	Error     *junitProblem `xml:"error,omitempty"`
}

type junitProblem struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// MarshalJUnit encodes outcomes as a JUnit XML document
func MarshalJUnit(outcomes []domain.Outcome, duration time.Duration) ([]byte, error) {
	summary, _ := Aggregate(outcomes)
	suite := junitTestSuite{
		Name:     junitSuiteName,
		Tests:    summary.Total,
		Failures: summary.Failed,
		Errors:   summary.Errored,
		Time:     seconds(duration),
	}
	if len(summary.NonPassing) > 0 {
		suite.SystemOut = summary.String()
	}
	for _, o := range outcomes {
		tc := junitTestCase{
			Name:      o.Name,
			ClassName: junitSuiteName,
			Time:      seconds(o.Duration),
		}
		switch o.Status {
		case domain.StatusFail:
			tc.Failure = &junitProblem{Message: o.Reason, Type: "mismatch", Body: o.DiffPath}
		case domain.StatusError:
			tc.Error = &junitProblem{Message: o.Reason, Type: "error", Body: o.Details}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	doc := junitTestSuites{
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Errors:   suite.Errors,
		Time:     suite.Time,
		Suites:   []junitTestSuite{suite},
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal junit: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// WriteJUnit writes the JUnit report to path
func WriteJUnit(path string, outcomes []domain.Outcome, duration time.Duration) error {
	data, err := MarshalJUnit(outcomes, duration)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create junit dir: %w", err)
	}
	if err := fsx.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write junit: %w", err)
	}
	return nil
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
