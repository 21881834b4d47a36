package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for plan dates.
const DateLayout = "2006-01-02"

// PlanEntry is the date range planned for one phase of a use case. A use
// case has at most one entry per phase.
type PlanEntry struct {
	ID        int64
	UseCaseID int64
	PhaseID   int64
	StartDate string
	EndDate   string
	Audit
}

// Validate checks the phase id and normalizes both dates in place. Empty
// dates are allowed and stored as NULL.
func (p *PlanEntry) Validate() error {
	if p.PhaseID <= 0 {
		return fmt.Errorf("usecasephaseid is required")
	}
	start, err := NormalizeDate(p.StartDate)
	if err != nil {
		return fmt.Errorf("startdate: %w", err)
	}
	end, err := NormalizeDate(p.EndDate)
	if err != nil {
		return fmt.Errorf("enddate: %w", err)
	}
	if start != "" && end != "" && end < start {
		return fmt.Errorf("enddate %s is before startdate %s", end, start)
	}
	p.StartDate, p.EndDate = start, end
	return nil
}

// NormalizeDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns
// the calendar date in DateLayout.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
}
