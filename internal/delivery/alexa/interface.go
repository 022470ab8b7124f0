package alexa

import (
	"context"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type CaseProvider interface {
	CreateCase(ctx context.Context, token, subject, description string) (string, error)
	CreateEmergencyCase(ctx context.Context, token string) (string, error)
	AddComment(ctx context.Context, token, caseID, comment string) error
	CountOpenCases(ctx context.Context, token string) (int, error)
	OpenCases(ctx context.Context, token string) ([]domain.CaseSummary, error)
	CaseByNumber(ctx context.Context, token, caseNumber string) (domain.CaseSummary, error)
	StatusSummary(ctx context.Context, token, userID string) ([]domain.StatusCount, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}
