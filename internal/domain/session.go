package domain

import (
	"encoding/json"
	"fmt"
)

// Dialogue steps derived from the session state. They are never stored; only
// the attribute flags below travel between turns.
const (
	StepIdle                 = "idle"
	StepAwaitingSubject      = "awaiting_subject"
	StepAwaitingDescription  = "awaiting_description"
	StepAwaitingConfirmation = "awaiting_confirmation"
	StepAwaitingSelection    = "awaiting_selection"
	StepAwaitingCaseNumber   = "awaiting_case_number"
	StepAwaitingComment      = "awaiting_comment"
)

// SessionState is the typed view of the platform's session attribute bag. The
// JSON keys must stay byte-compatible with conversations already in flight.
type SessionState struct {
	NewCase            bool          `json:"newCase,omitempty"`
	DescReceived       bool          `json:"isDescReceived,omitempty"`
	Subject            string        `json:"subject,omitempty"`
	CCBlock            bool          `json:"ccBlock,omitempty"`
	OnlyOneCase        bool          `json:"onlyOneCase,omitempty"`
	Cases              []CaseSummary `json:"caseSubjectsResult,omitempty"`
	CommentCaseID      string        `json:"idToAddCaseComment,omitempty"`
	AwaitingCaseNumber bool          `json:"awaitingCaseNumber,omitempty"`
	User               *Identity     `json:"loggedInUser,omitempty"`
}

// Step derives the current dialogue step. Order matters: a resolved comment
// target wins over a cached case list, which wins over the confirmation flag.
func (s *SessionState) Step() string {
	switch {
	case s.NewCase && !s.DescReceived:
		return StepAwaitingSubject
	case s.NewCase:
		return StepAwaitingDescription
	case s.CommentCaseID != "":
		return StepAwaitingComment
	case len(s.Cases) > 0:
		return StepAwaitingSelection
	case s.AwaitingCaseNumber:
		return StepAwaitingCaseNumber
	case s.CCBlock:
		return StepAwaitingConfirmation
	default:
		return StepIdle
	}
}

// StartCaseFlow begins collecting a new service request. The comment flow is
// cleared first: the two flows must never be active at once, or free-form text
// becomes ambiguous.
func (s *SessionState) StartCaseFlow() {
	s.clearCommentFlow()
	s.NewCase = true
	s.DescReceived = false
	s.Subject = ""
}

// StartCommentFlow begins the comment disambiguation, clearing any half-built
// service request for the same reason.
func (s *SessionState) StartCommentFlow() {
	s.NewCase = false
	s.DescReceived = false
	s.Subject = ""
	s.clearCommentFlow()
	s.CCBlock = true
}

func (s *SessionState) clearCommentFlow() {
	s.CCBlock = false
	s.OnlyOneCase = false
	s.Cases = nil
	s.CommentCaseID = ""
	s.AwaitingCaseNumber = false
}

// Reset returns the session to a blank slate, cached identity included.
func (s *SessionState) Reset() {
	*s = SessionState{}
}

func StateFromAttributes(attrs map[string]any) (*SessionState, error) {
	const op = "domain.StateFromAttributes"
	if len(attrs) == 0 {
		return &SessionState{}, nil
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var state SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &state, nil
}

// Attributes renders the state back into the bag the platform echoes on the
// next turn. Always non-nil so an open session carries its mapping.
func (s *SessionState) Attributes() map[string]any {
	attrs := make(map[string]any)
	raw, err := json.Marshal(s)
	if err != nil {
		return attrs
	}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return map[string]any{}
	}
	return attrs
}
