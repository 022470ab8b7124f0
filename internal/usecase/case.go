package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

const (
	emergencySubject     = "Accident"
	emergencyDescription = "Vehicle met with an Accident"
)

type Case struct {
	repo RecordStore
}

func NewCase(repo RecordStore) *Case {
	return &Case{repo: repo}
}

func (uc *Case) CreateCase(ctx context.Context, token, subject, description string) (string, error) {
	const op = "usecase.CreateCase"

	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("%s: empty subject", op)
	}
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("%s: empty description", op)
	}

	number, err := uc.repo.CreateCase(ctx, token, false, subject, description)
	if err != nil {
		return "", &domain.RemoteError{Op: op, Err: err}
	}
	return number, nil
}

// CreateEmergencyCase files the fixed urgent accident case.
func (uc *Case) CreateEmergencyCase(ctx context.Context, token string) (string, error) {
	const op = "usecase.CreateEmergencyCase"

	number, err := uc.repo.CreateCase(ctx, token, true, emergencySubject, emergencyDescription)
	if err != nil {
		return "", &domain.RemoteError{Op: op, Err: err}
	}
	return number, nil
}

func (uc *Case) AddComment(ctx context.Context, token, caseID, comment string) error {
	const op = "usecase.AddComment"

	if caseID == "" {
		return fmt.Errorf("%s: empty case id", op)
	}
	if strings.TrimSpace(comment) == "" {
		return fmt.Errorf("%s: empty comment", op)
	}

	if err := uc.repo.CreateCaseComment(ctx, token, caseID, comment); err != nil {
		return &domain.RemoteError{Op: op, Err: err}
	}
	return nil
}

func (uc *Case) CountOpenCases(ctx context.Context, token string) (int, error) {
	const op = "usecase.CountOpenCases"

	count, err := uc.repo.CountOpenCases(ctx, token)
	if err != nil {
		return 0, &domain.RemoteError{Op: op, Err: err}
	}
	return count, nil
}

func (uc *Case) OpenCases(ctx context.Context, token string) ([]domain.CaseSummary, error) {
	const op = "usecase.OpenCases"

	cases, err := uc.repo.QueryOpenCases(ctx, token)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	return cases, nil
}

// CaseByNumber keeps ErrRecordNotFound visible to the caller: an unknown case
// number is a user mistake, not a store failure.
func (uc *Case) CaseByNumber(ctx context.Context, token, caseNumber string) (domain.CaseSummary, error) {
	const op = "usecase.CaseByNumber"

	if strings.TrimSpace(caseNumber) == "" {
		return domain.CaseSummary{}, fmt.Errorf("%s: empty case number", op)
	}

	summary, err := uc.repo.QueryCaseByNumber(ctx, token, caseNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.CaseSummary{}, fmt.Errorf("%s: %w", op, err)
		}
		return domain.CaseSummary{}, &domain.RemoteError{Op: op, Err: err}
	}
	return summary, nil
}

func (uc *Case) StatusSummary(ctx context.Context, token, userID string) ([]domain.StatusCount, error) {
	const op = "usecase.StatusSummary"

	if userID == "" {
		return nil, fmt.Errorf("%s: empty user id", op)
	}

	summary, err := uc.repo.QueryStatusSummary(ctx, token, userID)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	return summary, nil
}
