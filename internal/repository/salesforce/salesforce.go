package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sunnykeerthi/service-center-user/configs"
	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

const (
	openCaseStatus = "New"
	urgentPriority = "High"
	// Case numbers are auto-numbered 8-digit strings on the store side.
	caseNumberWidth = 8
)

type Repo struct {
	InstanceURL string
	APIVersion  string
	Client      *http.Client
	log         *slog.Logger
}

func NewRepo(config *configs.Config, log *slog.Logger) *Repo {
	return &Repo{
		InstanceURL: strings.TrimRight(config.SF.InstanceURL, "/"),
		APIVersion:  config.SF.APIVersion,
		Client: &http.Client{
			Timeout: config.SF.Timeout,
		},
		log: log,
	}
}

// CreateCase inserts a Case and reads back the server-assigned case number.
func (repo *Repo) CreateCase(ctx context.Context, token string, urgent bool, subject, description string) (string, error) {
	const op = "salesforce.CreateCase"

	record := map[string]string{
		"Subject":     subject,
		"Description": description,
	}
	if urgent {
		record["Priority"] = urgentPriority
	}
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := repo.doRequest(ctx, token, http.MethodPost, repo.sobjectPath("Case"), body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var created struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
	}
	if err = json.Unmarshal(resp, &created); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !created.Success {
		return "", fmt.Errorf("%s: create rejected: %s", op, resp)
	}

	soql := fmt.Sprintf("SELECT CaseNumber FROM Case WHERE Id = '%s'", sanitize(created.ID))
	qresp, err := repo.query(ctx, token, soql)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var result struct {
		Records []struct {
			CaseNumber string `json:"CaseNumber"`
		} `json:"records"`
	}
	if err = json.Unmarshal(qresp, &result); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(result.Records) == 0 {
		return "", fmt.Errorf("%s: created case %s: %w", op, created.ID, domain.ErrRecordNotFound)
	}
	return result.Records[0].CaseNumber, nil
}

func (repo *Repo) CreateCaseComment(ctx context.Context, token, caseID, comment string) error {
	const op = "salesforce.CreateCaseComment"

	body, err := json.Marshal(map[string]any{
		"ParentId":    caseID,
		"CommentBody": comment,
		"IsPublished": true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := repo.doRequest(ctx, token, http.MethodPost, repo.sobjectPath("CaseComment"), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var created struct {
		Success bool `json:"success"`
	}
	if err = json.Unmarshal(resp, &created); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !created.Success {
		return fmt.Errorf("%s: create rejected: %s", op, resp)
	}
	return nil
}

func (repo *Repo) CountOpenCases(ctx context.Context, token string) (int, error) {
	const op = "salesforce.CountOpenCases"

	soql := fmt.Sprintf("SELECT COUNT(Id) total FROM Case WHERE Status = '%s'", openCaseStatus)
	resp, err := repo.query(ctx, token, soql)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var result struct {
		Records []struct {
			Total int `json:"total"`
		} `json:"records"`
	}
	if err = json.Unmarshal(resp, &result); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(result.Records) == 0 {
		return 0, fmt.Errorf("%s: empty aggregate result", op)
	}
	return result.Records[0].Total, nil
}

func (repo *Repo) QueryOpenCases(ctx context.Context, token string) ([]domain.CaseSummary, error) {
	const op = "salesforce.QueryOpenCases"

	soql := fmt.Sprintf("SELECT Id, Subject FROM Case WHERE Status = '%s' ORDER BY CreatedDate", openCaseStatus)
	resp, err := repo.query(ctx, token, soql)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result struct {
		Records []domain.CaseSummary `json:"records"`
	}
	if err = json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result.Records, nil
}

// QueryCaseByNumber resolves a spoken case number. Spoken digits lose their
// leading zeros, so short all-digit input is padded to the stored width.
func (repo *Repo) QueryCaseByNumber(ctx context.Context, token, caseNumber string) (domain.CaseSummary, error) {
	const op = "salesforce.QueryCaseByNumber"

	padded := caseNumber
	if isDigits(caseNumber) && len(caseNumber) < caseNumberWidth {
		padded = strings.Repeat("0", caseNumberWidth-len(caseNumber)) + caseNumber
	}

	soql := fmt.Sprintf("SELECT Id, Subject FROM Case WHERE CaseNumber = '%s'", sanitize(padded))
	resp, err := repo.query(ctx, token, soql)
	if err != nil {
		return domain.CaseSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	var result struct {
		Records []domain.CaseSummary `json:"records"`
	}
	if err = json.Unmarshal(resp, &result); err != nil {
		return domain.CaseSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(result.Records) == 0 {
		return domain.CaseSummary{}, fmt.Errorf("%s: case %s: %w", op, padded, domain.ErrRecordNotFound)
	}
	return result.Records[0], nil
}

func (repo *Repo) QueryStatusSummary(ctx context.Context, token, userID string) ([]domain.StatusCount, error) {
	const op = "salesforce.QueryStatusSummary"

	soql := fmt.Sprintf(
		"SELECT Status, COUNT(Id) total FROM Case WHERE ContactId = '%s' GROUP BY Status ORDER BY COUNT(Id) DESC",
		sanitize(userID))
	resp, err := repo.query(ctx, token, soql)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result struct {
		Records []struct {
			Status string `json:"Status"`
			Total  int    `json:"total"`
		} `json:"records"`
	}
	if err = json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := make([]domain.StatusCount, 0, len(result.Records))
	for _, record := range result.Records {
		summary = append(summary, domain.StatusCount{Status: record.Status, Count: record.Total})
	}
	return summary, nil
}

// Identity resolves the linked account behind an access token.
func (repo *Repo) Identity(ctx context.Context, token string) (domain.Identity, error) {
	const op = "salesforce.Identity"

	resp, err := repo.doRequest(ctx, token, http.MethodGet, "/services/oauth2/userinfo", nil)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	var userInfo struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	if err = json.Unmarshal(resp, &userInfo); err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Identity{
		UserID:      userInfo.UserID,
		DisplayName: userInfo.Name,
	}, nil
}

func (repo *Repo) query(ctx context.Context, token, soql string) ([]byte, error) {
	endpoint := fmt.Sprintf("/services/data/%s/query?q=%s", repo.APIVersion, url.QueryEscape(soql))
	return repo.doRequest(ctx, token, http.MethodGet, endpoint, nil)
}

func (repo *Repo) sobjectPath(name string) string {
	return fmt.Sprintf("/services/data/%s/sobjects/%s", repo.APIVersion, name)
}

func (repo *Repo) doRequest(ctx context.Context, token, method, endpoint string, body []byte) ([]byte, error) {
	const op = "Repo.doRequest"

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, repo.InstanceURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request:%w", op, err)
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := repo.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: bad status %d, response: %s", op, resp.StatusCode, respBody)
	}

	return io.ReadAll(resp.Body)
}

// sanitize strips quotes and backslashes from values interpolated into SOQL.
func sanitize(value string) string {
	replacer := strings.NewReplacer("'", "", "\\", "")
	return replacer.Replace(value)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
