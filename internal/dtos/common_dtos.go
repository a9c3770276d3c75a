package dtos

type HealthCheckResponse struct {
	Status string `json:"status"`
}

// ProblemResponse is the body of every failed request.
// Errors is only present for validation failures and maps field name to messages.
type ProblemResponse struct {
	Status   int                 `json:"status"`
	Title    string              `json:"title"`
	Detail   string              `json:"detail"`
	Instance string              `json:"instance"`
	Errors   map[string][]string `json:"errors,omitempty"`
}
