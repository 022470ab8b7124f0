package usecase

import (
	"context"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type RecordStore interface {
	CreateCase(ctx context.Context, token string, urgent bool, subject, description string) (string, error)
	CreateCaseComment(ctx context.Context, token, caseID, comment string) error
	CountOpenCases(ctx context.Context, token string) (int, error)
	QueryOpenCases(ctx context.Context, token string) ([]domain.CaseSummary, error)
	QueryCaseByNumber(ctx context.Context, token, caseNumber string) (domain.CaseSummary, error)
	QueryStatusSummary(ctx context.Context, token, userID string) ([]domain.StatusCount, error)
}

type IdentityProvider interface {
	Identity(ctx context.Context, token string) (domain.Identity, error)
}
