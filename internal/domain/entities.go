package domain

// CaseSummary keeps the record store's field names so cached lists survive in
// the platform's session attributes unchanged between turns.
type CaseSummary struct {
	ID      string `json:"Id"`
	Subject string `json:"Subject"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Identity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}
