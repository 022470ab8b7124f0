package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type storeCall struct {
	urgent      bool
	subject     string
	description string
}

type fakeStore struct {
	err         error
	caseNumber  string
	count       int
	cases       []domain.CaseSummary
	summary     []domain.StatusCount
	createCalls []storeCall
}

func (f *fakeStore) CreateCase(_ context.Context, _ string, urgent bool, subject, description string) (string, error) {
	f.createCalls = append(f.createCalls, storeCall{urgent, subject, description})
	return f.caseNumber, f.err
}

func (f *fakeStore) CreateCaseComment(context.Context, string, string, string) error {
	return f.err
}

func (f *fakeStore) CountOpenCases(context.Context, string) (int, error) {
	return f.count, f.err
}

func (f *fakeStore) QueryOpenCases(context.Context, string) ([]domain.CaseSummary, error) {
	return f.cases, f.err
}

func (f *fakeStore) QueryCaseByNumber(context.Context, string, string) (domain.CaseSummary, error) {
	if f.err != nil {
		return domain.CaseSummary{}, f.err
	}
	if len(f.cases) == 0 {
		return domain.CaseSummary{}, domain.ErrRecordNotFound
	}
	return f.cases[0], nil
}

func (f *fakeStore) QueryStatusSummary(context.Context, string, string) ([]domain.StatusCount, error) {
	return f.summary, f.err
}

func TestCreateCase_PassesExactArguments(t *testing.T) {
	store := &fakeStore{caseNumber: "00001026"}
	uc := NewCase(store)

	number, err := uc.CreateCase(context.Background(), "tok", "S", "D")
	require.NoError(t, err)
	assert.Equal(t, "00001026", number)

	require.Len(t, store.createCalls, 1)
	assert.Equal(t, storeCall{urgent: false, subject: "S", description: "D"}, store.createCalls[0])
}

func TestCreateCase_RejectsBlankInput(t *testing.T) {
	uc := NewCase(&fakeStore{})

	_, err := uc.CreateCase(context.Background(), "tok", "  ", "desc")
	assert.Error(t, err)

	_, err = uc.CreateCase(context.Background(), "tok", "subject", "")
	assert.Error(t, err)
}

func TestCreateEmergencyCase_UsesFixedUrgentRecord(t *testing.T) {
	store := &fakeStore{caseNumber: "00001099"}
	uc := NewCase(store)

	number, err := uc.CreateEmergencyCase(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "00001099", number)

	require.Len(t, store.createCalls, 1)
	assert.Equal(t, storeCall{
		urgent:      true,
		subject:     "Accident",
		description: "Vehicle met with an Accident",
	}, store.createCalls[0])
}

func TestAddComment_RejectsBlankInput(t *testing.T) {
	uc := NewCase(&fakeStore{})

	assert.Error(t, uc.AddComment(context.Background(), "tok", "", "text"))
	assert.Error(t, uc.AddComment(context.Background(), "tok", "500A", " "))
}

func TestRemoteFailuresWrapAsRemoteError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	uc := NewCase(store)

	_, err := uc.CreateCase(context.Background(), "tok", "S", "D")
	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)

	_, err = uc.CountOpenCases(context.Background(), "tok")
	require.ErrorAs(t, err, &remoteErr)

	err = uc.AddComment(context.Background(), "tok", "500A", "text")
	require.ErrorAs(t, err, &remoteErr)
}

func TestCaseByNumber_NotFoundStaysVisible(t *testing.T) {
	uc := NewCase(&fakeStore{})

	_, err := uc.CaseByNumber(context.Background(), "tok", "00009999")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	var remoteErr *domain.RemoteError
	assert.False(t, errors.As(err, &remoteErr))
}

func TestStatusSummary_RequiresUserID(t *testing.T) {
	uc := NewCase(&fakeStore{summary: []domain.StatusCount{{Status: "New", Count: 2}}})

	_, err := uc.StatusSummary(context.Background(), "tok", "")
	assert.Error(t, err)

	summary, err := uc.StatusSummary(context.Background(), "tok", "005")
	require.NoError(t, err)
	assert.Equal(t, []domain.StatusCount{{Status: "New", Count: 2}}, summary)
}
