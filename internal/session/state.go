// Package session holds the per-browser state of the predictor page: the most
// recent prediction and whether the specialist contact panel has been opened.
package session

import (
	"sync"
	"time"

	"github.com/perio-stage-predictor/internal/domain"
)

// PanelView is the sidebar state derived from a session. It is one of
// NoReport, ReportReady or ContactRevealed.
type PanelView interface {
	Phase() string
}

// Phase names used in JSON responses.
const (
	PhaseNoReport        = "no_report"
	PhaseReportReady     = "report_ready"
	PhaseContactRevealed = "contact_revealed"
)

// NoReport is shown until the first successful submission.
type NoReport struct{}

// ReportReady offers the download and the contact reveal trigger.
type ReportReady struct {
	Result *domain.PredictionResult
}

// ContactRevealed additionally shows the clinic contact details.
type ContactRevealed struct {
	Result  *domain.PredictionResult
	Contact domain.ClinicContact
}

func (NoReport) Phase() string        { return PhaseNoReport }
func (ReportReady) Phase() string     { return PhaseReportReady }
func (ContactRevealed) Phase() string { return PhaseContactRevealed }

// State is owned by exactly one session. Transitions only move forward:
// no report -> report ready -> contact revealed, until Reset.
type State struct {
	mu        sync.Mutex
	id        string
	contact   domain.ClinicContact
	last      *domain.PredictionResult
	revealed  bool
	createdAt time.Time
}

// NewState creates an empty session state.
func NewState(id string, contact domain.ClinicContact) *State {
	return &State{
		id:        id,
		contact:   contact,
		createdAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *State) ID() string {
	return s.id
}

// CreatedAt returns when the session started.
func (s *State) CreatedAt() time.Time {
	return s.createdAt
}

// Record replaces the last prediction. The revealed flag is kept.
func (s *State) Record(result *domain.PredictionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = result
}

// Reveal opens the contact panel. Revealing twice is a no-op. Without a
// report it returns domain.ErrNoReport and leaves the state unchanged.
func (s *State) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return domain.ErrNoReport
	}
	s.revealed = true
	return nil
}

// Reset returns the session to its initial state.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
	s.revealed = false
}

// Report returns the text of the last report.
func (s *State) Report() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return "", domain.ErrNoReport
	}
	return s.last.Report, nil
}

// View derives the sidebar state.
func (s *State) View() PanelView {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.last == nil:
		return NoReport{}
	case s.revealed:
		return ContactRevealed{Result: s.last, Contact: s.contact}
	default:
		return ReportReady{Result: s.last}
	}
}
