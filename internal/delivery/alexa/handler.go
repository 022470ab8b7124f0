package alexa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
	"github.com/sunnykeerthi/service-center-user/pkg/prometheus"
)

const (
	IntentCreateServiceRequest = "CreateServiceRequest"
	IntentCreateEmergencyCase  = "CreateAnEmergencyCase"
	IntentCreateCaseComment    = "CreateACaseComment"
	IntentCaseStatus           = "CaseStatusIntent"
	IntentFreeFormText         = "freeFormTextIntent"
	IntentNumber               = "NumberIntent"
	IntentServiceCenter        = "getServiceCenterIntent"
	IntentYes                  = "AMAZON.YesIntent"
	IntentNo                   = "AMAZON.NoIntent"
	IntentHelp                 = "AMAZON.HelpIntent"
	IntentCancel               = "AMAZON.CancelIntent"
	IntentStop                 = "AMAZON.StopIntent"
)

const (
	slotFreeFormText = "freeFormTextSlot"
	slotWordNumber   = "wordNumberSlot"
	slotNumber       = "numberSlot"
)

const (
	correlationIDKey = "correlation_id"
	sessionIDKey     = "session_id"
	intentKey        = "intent"
	errorKey         = "error"
	successKey       = "success"
)

const (
	speechClosing       = "Thank you for using our service. Have a good day!!!"
	speechAnythingElse  = "Is there anything else that I can help you with?"
	speechApology       = "Sorry, I'm having trouble reaching the service desk right now. Please try again later."
	speechUnknownIntent = "Unknown intent"
	speechWhichCase     = "Which case would you like to add a comment to?"
	speechAskCaseNumber = "what is the case number that you want to add a case comment to?"
)

// turn carries everything one conversation turn needs: the linked-account
// token, the typed session state and the recognized slot values.
type turn struct {
	token string
	state *domain.SessionState
	slots map[string]string
}

type handlerFunc func(ctx context.Context, t *turn) (*Response, error)

type Skill struct {
	cases         CaseProvider
	identity      IdentityResolver
	handlers      map[string]handlerFunc
	serviceCenter string
	log           *slog.Logger
}

func NewSkill(cases CaseProvider, identity IdentityResolver, serviceCenter string, log *slog.Logger) *Skill {
	s := &Skill{
		cases:         cases,
		identity:      identity,
		serviceCenter: serviceCenter,
		log:           log,
	}
	s.handlers = map[string]handlerFunc{
		requestTypeLaunch:          s.handleLaunch,
		IntentCreateServiceRequest: s.handleCreateServiceRequest,
		IntentCreateEmergencyCase:  s.handleCreateEmergencyCase,
		IntentCreateCaseComment:    s.handleCreateCaseComment,
		IntentCaseStatus:           s.handleCaseStatus,
		IntentFreeFormText:         s.handleFreeFormText,
		IntentNumber:               s.handleNumber,
		IntentServiceCenter:        s.handleServiceCenter,
		IntentYes:                  s.handleYes,
		IntentNo:                   s.handleNo,
		IntentHelp:                 s.handleHelp,
		IntentCancel:               s.handleClose,
		IntentStop:                 s.handleClose,
	}
	return s
}

// Dispatch routes one turn to its handler. Lookup is a single flat table; an
// unregistered name falls back to a terse closing response.
func (s *Skill) Dispatch(ctx context.Context, name string, t *turn) *Response {
	startTime := time.Now()
	defer func() {
		prometheus.IntentDuration.WithLabelValues(name).Observe(time.Since(startTime).Seconds())
	}()

	status := successKey
	defer func() {
		prometheus.IntentCounter.WithLabelValues(name, status).Inc()
	}()

	handler, ok := s.handlers[name]
	if !ok {
		status = errorKey
		s.log.WarnContext(ctx, "no handler registered",
			intentKey, name,
			errorKey, domain.ErrUnknownIntent,
			correlationIDKey, ctx.Value(correlationIDKey))
		resp := NewResponse()
		resp.SpeechText = speechUnknownIntent
		return resp
	}

	resp, err := handler(ctx, t)
	if err != nil {
		status = errorKey
		return s.recover(ctx, name, err)
	}
	return resp
}

// recover converts a handler failure into speech. A remote failure apologizes
// and closes conservatively; a bad selection re-prompts with state untouched.
func (s *Skill) recover(ctx context.Context, name string, err error) *Response {
	resp := NewResponse()
	var remoteErr *domain.RemoteError
	switch {
	case errors.As(err, &remoteErr):
		prometheus.APIFailures.WithLabelValues(name).Inc()
		s.log.ErrorContext(ctx, "record store call failed",
			intentKey, name,
			errorKey, err,
			correlationIDKey, ctx.Value(correlationIDKey))
		resp.SpeechText = speechApology
	case errors.Is(err, domain.ErrInvalidSelection):
		s.log.InfoContext(ctx, "selection out of range",
			intentKey, name,
			correlationIDKey, ctx.Value(correlationIDKey))
		resp.SpeechText = "Sorry, I didn't find that case. Please pick a number from the list."
		resp.RepromptText = speechWhichCase
		resp.ShouldEndSession = false
	default:
		s.log.ErrorContext(ctx, "handler failed",
			intentKey, name,
			errorKey, err,
			correlationIDKey, ctx.Value(correlationIDKey))
		resp.SpeechText = speechApology
	}
	return resp
}

// handleLaunch greets a linked user by name, or asks for account linking and
// closes without touching the record store.
func (s *Skill) handleLaunch(ctx context.Context, t *turn) (*Response, error) {
	resp := NewResponse()
	if t.token == "" {
		resp.SpeechText = "Hi there, to experience the best of our service, request you to link your account. " +
			"please click on, Link Account in your alexa app"
		resp.LinkAccount = true
		return resp, nil
	}

	identity, err := s.identity.Resolve(ctx, t.token)
	if err != nil {
		return nil, err
	}
	t.state.User = &identity

	resp.SpeechText = fmt.Sprintf("Hi %s, How can I help you today?", identity.DisplayName)
	resp.RepromptText = "How can I help you today?"
	resp.ShouldEndSession = false
	return resp, nil
}

func (s *Skill) handleCreateServiceRequest(ctx context.Context, t *turn) (*Response, error) {
	t.state.StartCaseFlow()
	prometheus.ActiveFlows.Inc()

	resp := NewResponse()
	resp.SpeechText = "what is the issue with?"
	resp.RepromptText = "Please tell me the subject of the issue."
	resp.ShouldEndSession = false
	return resp, nil
}

func (s *Skill) handleCreateEmergencyCase(ctx context.Context, t *turn) (*Response, error) {
	number, err := s.cases.CreateEmergencyCase(ctx, t.token)
	if err != nil {
		return nil, err
	}

	resp := NewResponse()
	resp.SpeechText = fmt.Sprintf("I've created a case with Case Number %s", number)
	return resp, nil
}

// handleCreateCaseComment starts the comment flow. One open case skips the
// disambiguation entirely; more than one asks whether to list them.
func (s *Skill) handleCreateCaseComment(ctx context.Context, t *turn) (*Response, error) {
	count, err := s.cases.CountOpenCases(ctx, t.token)
	if err != nil {
		return nil, err
	}

	resp := NewResponse()
	resp.ShouldEndSession = false
	switch {
	case count == 0:
		resp.SpeechText = "You don't have any open cases. " + speechAnythingElse
	case count == 1:
		cases, err := s.cases.OpenCases(ctx, t.token)
		if err != nil {
			return nil, err
		}
		if len(cases) == 0 {
			return nil, fmt.Errorf("open case count and query disagree")
		}
		t.state.StartCommentFlow()
		t.state.OnlyOneCase = true
		t.state.CommentCaseID = cases[0].ID
		resp.SpeechText = fmt.Sprintf("what do you want me to add to the case with subject, %s?", cases[0].Subject)
		resp.RepromptText = "What do you want me to add to the case?"
	default:
		t.state.StartCommentFlow()
		resp.SpeechText = fmt.Sprintf(
			"There are %d cases on your name. do you want me to list the case subjects to pick one?", count)
		resp.RepromptText = "Do you want me to list the case subjects?"
	}
	return resp, nil
}

// handleYes only means something while the skill is offering to list open
// cases; anywhere else it gets a gentle fallback.
func (s *Skill) handleYes(ctx context.Context, t *turn) (*Response, error) {
	resp := NewResponse()
	resp.ShouldEndSession = false

	if t.state.Step() != domain.StepAwaitingConfirmation {
		resp.SpeechText = "Ok. " + speechAnythingElse
		return resp, nil
	}

	cases, err := s.cases.OpenCases(ctx, t.token)
	if err != nil {
		return nil, err
	}

	var speech strings.Builder
	speech.WriteString("Here are your open cases.")
	for i, c := range cases {
		fmt.Fprintf(&speech, " Case %d, %s.", i+1, c.Subject)
	}
	speech.WriteString(" " + speechWhichCase)

	t.state.Cases = cases
	resp.SpeechText = speech.String()
	resp.RepromptText = speechWhichCase
	return resp, nil
}

func (s *Skill) handleNo(ctx context.Context, t *turn) (*Response, error) {
	resp := NewResponse()
	if t.state.CCBlock {
		t.state.CCBlock = false
		t.state.AwaitingCaseNumber = true
		resp.SpeechText = "Ok. please give the case number that you like to add the case comment to"
		resp.RepromptText = speechAskCaseNumber
		resp.ShouldEndSession = false
		return resp, nil
	}

	resp.SpeechText = speechClosing
	return resp, nil
}

// handleNumber resolves a spoken ordinal against the cached case list, or a
// full case number when the user declined the listing.
func (s *Skill) handleNumber(ctx context.Context, t *turn) (*Response, error) {
	number, err := parseSpokenNumber(t.slots[slotWordNumber], t.slots[slotNumber])
	if err != nil {
		return nil, err
	}

	if t.state.Step() == domain.StepAwaitingCaseNumber {
		return s.resolveCaseByNumber(ctx, t, number)
	}

	if number < 1 || number > len(t.state.Cases) {
		return nil, fmt.Errorf("index %d against %d cached cases: %w",
			number, len(t.state.Cases), domain.ErrInvalidSelection)
	}

	selected := t.state.Cases[number-1]
	t.state.CommentCaseID = selected.ID

	resp := NewResponse()
	resp.SpeechText = fmt.Sprintf("what do you want me to add to the case with subject, %s?", selected.Subject)
	resp.RepromptText = "What do you want me to add to the case?"
	resp.ShouldEndSession = false
	return resp, nil
}

func (s *Skill) resolveCaseByNumber(ctx context.Context, t *turn, number int) (*Response, error) {
	resp := NewResponse()
	resp.ShouldEndSession = false

	summary, err := s.cases.CaseByNumber(ctx, t.token, strconv.Itoa(number))
	if errors.Is(err, domain.ErrRecordNotFound) {
		resp.SpeechText = fmt.Sprintf("I couldn't find a case with number %d. Please say the case number again.", number)
		resp.RepromptText = speechAskCaseNumber
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	t.state.AwaitingCaseNumber = false
	t.state.CommentCaseID = summary.ID
	resp.SpeechText = fmt.Sprintf("what do you want me to add to the case with subject, %s?", summary.Subject)
	resp.RepromptText = "What do you want me to add to the case?"
	return resp, nil
}

// handleFreeFormText is routed purely by the derived dialogue step: the same
// utterance is a subject, a description or a comment body depending on where
// the conversation stands.
func (s *Skill) handleFreeFormText(ctx context.Context, t *turn) (*Response, error) {
	text := strings.TrimSpace(t.slots[slotFreeFormText])

	resp := NewResponse()
	resp.ShouldEndSession = false
	if text == "" {
		resp.SpeechText = "Sorry, I didn't catch that. Could you say it again?"
		return resp, nil
	}

	switch t.state.Step() {
	case domain.StepAwaitingSubject:
		t.state.Subject = text
		t.state.DescReceived = true
		resp.SpeechText = "Please explain your issue in detail?"
		resp.RepromptText = "Please describe the issue in detail."
		return resp, nil

	case domain.StepAwaitingDescription:
		number, err := s.cases.CreateCase(ctx, t.token, t.state.Subject, text)
		if err != nil {
			return nil, err
		}
		subject := t.state.Subject
		t.state.NewCase = false
		t.state.DescReceived = false
		t.state.Subject = ""
		prometheus.ActiveFlows.Dec()
		resp.SpeechText = fmt.Sprintf("I've created a case with Case Number %s. %s", number, speechAnythingElse)
		resp.CardTitle = "Service request created"
		resp.CardContent = fmt.Sprintf("Case %s: %s", number, subject)
		return resp, nil

	case domain.StepAwaitingComment:
		if err := s.cases.AddComment(ctx, t.token, t.state.CommentCaseID, text); err != nil {
			return nil, err
		}
		t.state.Reset()
		resp.SpeechText = "I've created a case comment. " + speechAnythingElse
		return resp, nil

	default:
		resp.SpeechText = "I'm not sure what that was for. You can create a service request, " +
			"or add a comment to one of your cases."
		return resp, nil
	}
}

// handleCaseStatus reports the status spread of the user's cases, leading
// with the dominant status.
func (s *Skill) handleCaseStatus(ctx context.Context, t *turn) (*Response, error) {
	if t.state.User == nil {
		resp := NewResponse()
		resp.SpeechText = "I don't know who you are yet. Please open the skill again so I can look you up."
		return resp, nil
	}

	summary, err := s.cases.StatusSummary(ctx, t.token, t.state.User.UserID)
	if err != nil {
		return nil, err
	}

	resp := NewResponse()
	resp.ShouldEndSession = false
	if len(summary) == 0 {
		resp.SpeechText = "You don't have any cases on your name. " + speechAnythingElse
		return resp, nil
	}

	total := 0
	for _, status := range summary {
		total += status.Count
	}
	// the store returns the summary ordered by count, largest first
	dominant := summary[0]
	if total == 1 {
		resp.SpeechText = fmt.Sprintf("You have one case, in status %s. %s", dominant.Status, speechAnythingElse)
	} else {
		resp.SpeechText = fmt.Sprintf("You have %d cases. %d of them are in status %s. %s",
			total, dominant.Count, dominant.Status, speechAnythingElse)
	}
	return resp, nil
}

func (s *Skill) handleServiceCenter(ctx context.Context, t *turn) (*Response, error) {
	resp := NewResponse()
	resp.SpeechText = fmt.Sprintf("From your location, your nearest Service center is at %s.", s.serviceCenter)
	return resp, nil
}

func (s *Skill) handleHelp(ctx context.Context, t *turn) (*Response, error) {
	resp := NewResponse()
	resp.SpeechText = "You can create a service request, add a comment to an open case, " +
		"ask for your case status, or ask for the nearest service center. How can I help you today?"
	resp.RepromptText = "How can I help you today?"
	resp.ShouldEndSession = false
	return resp, nil
}

// handleClose serves Cancel and Stop identically: closing remark, session
// over, partial state discarded with it.
func (s *Skill) handleClose(ctx context.Context, t *turn) (*Response, error) {
	if t.state.NewCase {
		prometheus.ActiveFlows.Dec()
	}

	resp := NewResponse()
	resp.SpeechText = speechClosing
	return resp, nil
}
