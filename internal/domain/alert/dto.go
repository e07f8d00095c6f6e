package alert

type AlertResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ProjectID  string `json:"project_id"`
	Kind       string `json:"kind"`
	Severity   string `json:"severity"`
	Date       string `json:"date"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
	Read       bool   `json:"read"`
}

// SSETokenResponse carries the short-lived token used to open the event
// stream; EventSource cannot send Authorization headers.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func ToAlertResponse(a Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ProjectID:  a.ProjectID,
		Kind:       a.Kind,
		Severity:   a.Severity,
		Date:       a.Date.Format("2006-01-02"),
		Message:    a.Message,
		CreatedAt:  a.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Read:       a.ReadAt != nil,
	}
}
